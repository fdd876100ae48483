package shaders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const combinedSrc = `//shader:vertex
#version 410
void main() {}
//shader:fragment
#version 410
void main() {}
`

func TestSplitCombinedShaderSrc(t *testing.T) {

	sources, err := SplitCombinedShaderSrc([]byte(combinedSrc))
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Contains(t, string(sources[gpu.ShaderType_Vertex]), "#version 410")
	assert.NotContains(t, string(sources[gpu.ShaderType_Vertex]), "//shader:")
	assert.Contains(t, string(sources[gpu.ShaderType_Fragment]), "void main")
}

func TestSplitCombinedShaderSrcErrors(t *testing.T) {

	tests := map[string]string{
		"no markers":     "void main() {}",
		"no fragment":    "//shader:vertex\nvoid main() {}",
		"no vertex":      "//shader:fragment\nvoid main() {}",
		"unknown stage":  "//shader:vertex\nA\n//shader:compute\nB\n//shader:fragment\nC",
		"repeated stage": "//shader:vertex\nA\n//shader:vertex\nB\n//shader:fragment\nC",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := SplitCombinedShaderSrc([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadAndCompileCombinedShader(t *testing.T) {

	rec := gputest.NewRecorder()

	path := filepath.Join(t.TempDir(), "basic.glsl")
	require.NoError(t, os.WriteFile(path, []byte(combinedSrc), 0o644))

	prog, err := LoadAndCompileCombinedShader(rec, path)
	require.NoError(t, err)
	assert.Equal(t, "basic", prog.Name)
	assert.NotZero(t, prog.Id)
	assert.Len(t, rec.Programs[prog.Id], 2)

	prog.Bind(rec)
	c, _ := rec.Last("UseProgram")
	assert.Equal(t, []any{prog.Id}, c.Args)

	id := prog.Id
	prog.Delete(rec)
	assert.Equal(t, 1, rec.Deleted[id])

	rec.ProgramErr = errors.New("link failed")
	_, err = LoadAndCompileCombinedShaderSrc(rec, "broken", []byte(combinedSrc))
	assert.ErrorContains(t, err, "link failed")

	_, err = LoadAndCompileCombinedShader(rec, filepath.Join(t.TempDir(), "missing.glsl"))
	assert.Error(t, err)
}

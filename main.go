package main

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/assets"
	"github.com/bloeys/nrend/buffers"
	"github.com/bloeys/nrend/config"
	"github.com/bloeys/nrend/engine"
	"github.com/bloeys/nrend/gpu"
	"github.com/bloeys/nrend/logging"
	"github.com/bloeys/nrend/materials"
	"github.com/bloeys/nrend/meshes"
	"github.com/bloeys/nrend/renderer"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	camRotSpeed  float32 = 0.005
	camZoomSpeed float32 = 0.5
	gridHalfSize float32 = 100

	// Units per second while a zoom key is held
	camKeyZoomSpeed float32 = 5
)

var (
	modelRotSpeed float32 = 20 * gglm.Deg2Rad
)

type Game struct {
	Win *engine.Window
	Cfg *config.Config

	Reg  *renderer.Registry
	Rend *renderer.Renderer

	Mesh    *meshes.Mesh
	Mats    []materials.Material
	Grid    *meshes.Mesh
	GridMat materials.Material

	diffuseTex gpu.Handle

	camYaw   float32
	camPitch float32
	camDist  float32
	modelRot float32
	drawGrid bool
	// The model stops spinning while the user drags the camera around
	dragging bool

	frame         int
	loggedDrawErr bool
}

func main() {

	cfg, err := config.Load(config.DefaultPath)
	if errors.Is(err, os.ErrNotExist) {
		logging.WarnLog.Printf("No '%s' found, using default settings\n", config.DefaultPath)
		cfg = config.Default()
	} else if err != nil {
		logging.ErrLog.Fatalln("Failed to load config. Err:", err)
	}

	//Init engine
	err = engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init nrend. Err:", err)
	}
	defer engine.DeInit()

	//Create window
	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}

	engine.SetMSAA(cfg.Window.MSAA)
	engine.SetVSync(cfg.Window.VSync)
	engine.SetSrgbFramebuffer(cfg.Window.Srgb)

	game := &Game{
		Win:      window,
		Cfg:      cfg,
		camPitch: 0.4,
		camDist:  cfg.Camera.Distance,
		drawGrid: cfg.Render.DrawGrid,
	}

	engine.Run(game, window)
}

func (g *Game) Init() {

	var err error
	ctx := g.Win.Gpu

	g.Reg, err = renderer.NewRegistry(ctx)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create shaders. Err:", err)
	}

	g.Rend, err = renderer.New(ctx, g.Reg)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create renderer. Err:", err)
	}

	loader := &assets.Loader{
		BaseDir:     g.Cfg.Assets.BaseDir,
		MaxParallel: g.Cfg.Assets.MaxParallel,
		OnFileComplete: func(name string) {
			logging.InfoLog.Printf("Loaded '%s'\n", name)
		},
	}

	if g.Cfg.Assets.ShowProgress {
		loader.OnProgress = assets.ProgressBarCallback()
	}

	if g.Cfg.Assets.DiffuseTexture != "" {

		files, err := loader.LoadAll(context.Background(), g.Cfg.Assets.DiffuseTexture)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load textures. Err:", err)
		}

		g.diffuseTex, err = assets.LoadTexture(ctx, files[0], assets.TextureLoadOptions{IsSrgb: g.Cfg.Window.Srgb})
		if err != nil {
			logging.ErrLog.Fatalln("Failed to create diffuse texture. Err:", err)
		}
	}

	geom, err := meshes.LoadGeometry(loader.Path(g.Cfg.Assets.Model), 0)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to load model. Err:", err)
	}

	g.Mesh, err = meshes.NewMesh(ctx, filepath.Base(g.Cfg.Assets.Model), geom)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create mesh. Err:", err)
	}

	g.Mats = g.createMaterials(geom)

	g.Grid, err = meshes.NewMesh(ctx, "grid", gridGeometry())
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create grid mesh. Err:", err)
	}
	g.GridMat = materials.NewBasicMaterial("grid", g.Reg.Grid, g.Reg.EmptyTexture)

	// Mesh creation bound buffers behind the renderer's back
	g.Rend.Invalidate()

	logging.InfoLog.Printf("Model '%s' has %d submeshes and %d indices\n", g.Mesh.Name, len(g.Mesh.SubMeshes), g.Mesh.Count)
}

// createMaterials makes one material per material index used by the geometry
func (g *Game) createMaterials(geom *meshes.Geometry) []materials.Material {

	matCount := 0
	for _, grp := range geom.Groups {
		matCount = max(matCount, grp.MaterialIndex+1)
	}

	mats := make([]materials.Material, matCount)
	for i := range mats {

		switch g.Cfg.Render.Shader {
		case config.Shader_Basic:
			m := materials.NewBasicMaterial("basic", g.Reg.Basic, g.Reg.EmptyTexture)
			m.AlbedoTex = g.diffuseTex
			mats[i] = m
		case config.Shader_Normals:
			mats[i] = materials.NewBasicMaterial("normals", g.Reg.NormalOnly, g.Reg.EmptyTexture)
		default:
			m := materials.NewTexturedMaterial("pbr", g.Reg.PBR, g.Reg.EmptyTexture)
			m.DiffuseTex = g.diffuseTex
			mats[i] = m
		}
	}

	return mats
}

func gridGeometry() *meshes.Geometry {

	s := gridHalfSize
	return &meshes.Geometry{
		Vertices: []float32{
			-s, 0, -s,
			-s, 0, s,
			s, 0, s,

			s, 0, s,
			s, 0, -s,
			-s, 0, -s,
		},
		Layout: []buffers.Element{{ElementType: buffers.DataTypeVec3}},
		Groups: []meshes.Group{{MaterialIndex: 0, Offset: 0, Count: 6}},
	}
}

func (g *Game) Update(dt float32) {

	in := g.Win.Input
	if in.IsQuitClicked() || in.KeyClicked(sdl.K_ESCAPE) {
		g.Win.Quit()
	}

	if in.KeyClicked(sdl.K_g) {
		g.drawGrid = !g.drawGrid
	}

	if in.MouseReleased(sdl.BUTTON_LEFT) {
		g.dragging = false
	}

	if in.MouseDown(sdl.BUTTON_LEFT) {

		g.dragging = true

		const MAX_MOUSE_MOVE = 300
		mouseX, mouseY := in.MouseMotion()
		mouseX = gglm.Clamp(mouseX, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)
		mouseY = gglm.Clamp(mouseY, -MAX_MOUSE_MOVE, MAX_MOUSE_MOVE)

		g.camYaw += float32(mouseX) * camRotSpeed
		g.camPitch = gglm.Clamp(g.camPitch+float32(mouseY)*camRotSpeed, -1.5, 1.5)
	}

	zoom := float32(in.MouseWheelYNorm()) * camZoomSpeed
	if in.KeyDown(sdl.K_w) {
		zoom += camKeyZoomSpeed * dt
	}
	if in.KeyDown(sdl.K_s) {
		zoom -= camKeyZoomSpeed * dt
	}
	g.camDist = max(g.camDist-zoom, g.Cfg.Camera.Near*2)

	if !g.dragging {
		g.modelRot += modelRotSpeed * dt
	}
}

func (g *Game) viewProj() (view, proj gglm.Mat4) {

	cosPitch := float32(math.Cos(float64(g.camPitch)))
	eye := gglm.NewVec3(
		g.camDist*cosPitch*float32(math.Sin(float64(g.camYaw))),
		g.camDist*float32(math.Sin(float64(g.camPitch))),
		g.camDist*cosPitch*float32(math.Cos(float64(g.camYaw))),
	)
	target := gglm.NewVec3(0, 0, 0)
	up := gglm.NewVec3(0, 1, 0)

	view = gglm.LookAtRH(&eye, &target, &up).Mat4

	w, h := g.Win.DrawableSize()
	aspect := float32(w) / float32(max(h, 1))

	projMat := gglm.Perspective(g.Cfg.Camera.FovDeg*gglm.Deg2Rad, aspect, g.Cfg.Camera.Near, g.Cfg.Camera.Far)
	proj = *projMat.Clone()

	return view, proj
}

func (g *Game) Render() {

	view, proj := g.viewProj()

	g.Rend.BeginFrame()
	g.Rend.SetPerFrameUniforms(&view, &proj)

	model := gglm.NewTrMatId()
	model.Rotate(g.modelRot, 0, 1, 0)

	g.logDrawErr(g.Rend.DrawMesh(g.Mesh, &model.Mat4, &view, &proj, g.Mats))

	if g.drawGrid {

		gridModel := gglm.NewTrMatId()

		engine.SetDepthWrite(false)
		g.logDrawErr(g.Rend.DrawMesh(g.Grid, &gridModel.Mat4, &view, &proj, []materials.Material{g.GridMat}))
		engine.SetDepthWrite(true)
	}
}

// logDrawErr logs only the first draw error, as the same error would otherwise repeat every frame
func (g *Game) logDrawErr(err error) {

	if err == nil || g.loggedDrawErr {
		return
	}

	g.loggedDrawErr = true
	logging.ErrLog.Println("Draw failed. Further draw errors are not logged. Err:", err)
}

func (g *Game) FrameEnd() {

	g.frame++

	interval := g.Cfg.Render.StatsLogInterval
	if interval > 0 && g.frame%interval == 0 {
		logging.InfoLog.Printf("Frame %d: %s\n", g.frame, g.Rend.Stats())
	}
}

func (g *Game) DeInit() {

	ctx := g.Win.Gpu

	g.Mesh.Destroy(ctx)
	g.Grid.Destroy(ctx)

	if g.diffuseTex != 0 {
		ctx.DeleteTexture(g.diffuseTex)
	}

	g.Rend.Delete()
	g.Reg.Delete(ctx)

	g.Win.Destroy()
}

package starlight

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Batch is a run of world-space triangles sharing one colour.
type Batch struct {
	Positions []mgl32.Vec3
	Color     [4]float32
	// Silhouette marks batches that are drawn as shadows against the moon.
	Silhouette bool
}

// SceneGeometry is rebuilt every frame from the scene hierarchy. Batches
// are in draw order.
type SceneGeometry struct {
	Batches []Batch
}

// SilhouettePoints returns the vertices of every silhouette batch.
func (g *SceneGeometry) SilhouettePoints() []mgl32.Vec3 {
	var out []mgl32.Vec3
	for _, b := range g.Batches {
		if b.Silhouette {
			out = append(out, b.Positions...)
		}
	}
	return out
}

// HierarchyModule loads the moon and sleigh scene, drives the sleigh node
// from the starfield and flattens the hierarchy into world-space geometry.
type HierarchyModule struct {
	Scene *SceneDef
}

func (mod HierarchyModule) Install(app *App, cmd *Commands) {
	def := DefaultSceneDef()
	if mod.Scene != nil {
		def = *mod.Scene
	}
	assets := mustResource[AssetServer](app, "HierarchyModule")
	cmd.AddResources(LoadScene(assets, def), &SceneGeometry{})

	app.UseSystem(
		System(transformHierarchySystem).
			InStage(PreRender).
			RunAlways(),
	)
	app.UseSystem(
		System(sceneGeometrySystem).
			InStage(PreRender).
			RunAlways(),
	)
}

// transformHierarchySystem copies the animated sleigh pose into its node and
// recomposes world transforms parent first.
func transformHierarchySystem(scene *Scene, sf *Starfield) {
	scene.Nodes[scene.Sleigh].Local = sleighLocal(sf.Sleigh)
	scene.propagate()
}

func sceneGeometrySystem(scene *Scene, assets *AssetServer, geom *SceneGeometry) {
	n := 0
	for i := range scene.Nodes {
		node := &scene.Nodes[i]
		world := node.World.ObjectToWorld()
		for _, nm := range node.Meshes {
			mesh, ok := assets.Mesh(nm.Mesh)
			if !ok {
				continue
			}
			if n == len(geom.Batches) {
				geom.Batches = append(geom.Batches, Batch{})
			}
			b := &geom.Batches[n]
			b.Positions = mesh.Transformed(b.Positions[:0], world.Mul4(nm.Model))
			b.Color = nm.Color
			b.Silhouette = i == scene.Sleigh
			n++
		}
	}
	geom.Batches = geom.Batches[:n]
}

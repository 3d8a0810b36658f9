package starlight

import (
	"github.com/gekko3d/starlight/render/core"
	"github.com/gekko3d/starlight/sleigh"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MoonColor   uint32 = 0xFDFBD3
	SleighColor uint32 = 0x000000
)

// SceneDef defines the decorations drawn around the starfield.
type SceneDef struct {
	Moon   MoonDef
	Sleigh SleighDef
}

// MoonDef is the moon group: a lit disc that the sleigh crosses.
type MoonDef struct {
	Position mgl32.Vec3
	Radius   float32
	Color    uint32
}

// SleighDef is the silhouette parented to the moon group.
type SleighDef struct {
	Parts []sleigh.Part
	Color uint32
}

func DefaultSceneDef() SceneDef {
	return SceneDef{
		Moon: MoonDef{
			Position: mgl32.Vec3{0, 8, 0},
			Radius:   1.5,
			Color:    MoonColor,
		},
		Sleigh: SleighDef{
			Parts: sleigh.Silhouette(),
			Color: SleighColor,
		},
	}
}

// SceneNode is one node of the decoration hierarchy. Parent is an index
// into Scene.Nodes, or -1 for a root; parents always precede children.
type SceneNode struct {
	Name   string
	Parent int
	Local  core.Transform
	World  core.Transform
	Meshes []NodeMesh
}

// NodeMesh places a mesh asset inside its node.
type NodeMesh struct {
	Mesh  AssetId
	Model mgl32.Mat4
	Color [4]float32
}

// Scene is the loaded decoration hierarchy.
type Scene struct {
	Nodes  []SceneNode
	Moon   int
	Sleigh int
	def    SceneDef
}

// MoonCenter returns the moon's world position.
func (s *Scene) MoonCenter() mgl32.Vec3 {
	return s.Nodes[s.Moon].World.Position
}

// MoonRadius returns the moon's world radius.
func (s *Scene) MoonRadius() float32 {
	return s.def.Moon.Radius * s.Nodes[s.Moon].World.Scale.X()
}

// LoadScene registers the meshes of def with assets and builds the node
// hierarchy with world transforms at rest.
func LoadScene(assets *AssetServer, def SceneDef) *Scene {
	scene := &Scene{def: def}

	moon := core.NewTransform()
	moon.Position = def.Moon.Position
	scene.Moon = scene.add(SceneNode{
		Name:   "moon",
		Parent: -1,
		Local:  moon,
		Meshes: []NodeMesh{{
			Mesh:  assets.AddMesh(core.SphereMesh(def.Moon.Radius, 16, 32)),
			Model: mgl32.Ident4(),
			Color: core.HexColor(def.Moon.Color),
		}},
	})

	color := core.HexColor(def.Sleigh.Color)
	meshes := make([]NodeMesh, 0, len(def.Sleigh.Parts))
	for _, part := range def.Sleigh.Parts {
		meshes = append(meshes, NodeMesh{
			Mesh:  assets.AddMesh(partMesh(part)),
			Model: part.Model(),
			Color: color,
		})
	}
	scene.Sleigh = scene.add(SceneNode{
		Name:   "sleigh",
		Parent: scene.Moon,
		Local:  sleighLocal(sleigh.Animate(0, 0)),
		Meshes: meshes,
	})

	scene.propagate()
	return scene
}

func (s *Scene) add(node SceneNode) int {
	s.Nodes = append(s.Nodes, node)
	return len(s.Nodes) - 1
}

// propagate recomputes world transforms in a single pass.
func (s *Scene) propagate() {
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Parent < 0 {
			n.World = n.Local
			continue
		}
		n.World = core.Compose(s.Nodes[n.Parent].World, n.Local)
	}
}

func sleighLocal(t sleigh.Transform) core.Transform {
	return core.Transform{
		Position: t.Position,
		Rotation: t.Quat(),
		Scale:    mgl32.Vec3{sleigh.Scale, sleigh.Scale, sleigh.Scale},
	}
}

func partMesh(p sleigh.Part) core.Mesh {
	switch p.Shape {
	case sleigh.Sphere:
		return core.SphereMesh(p.Radius, 8, 16)
	case sleigh.Capsule:
		return core.CapsuleMesh(p.Radius, p.Length, 4, 8)
	default:
		return core.BoxMesh(p.Size)
	}
}

package starlight

import (
	"fmt"
	"os"

	"github.com/gekko3d/starlight/render/core"
	"github.com/google/uuid"
)

type AssetId string

// AssetServer owns the meshes and glyph atlases shared by the renderers.
type AssetServer struct {
	meshes  map[AssetId]core.Mesh
	atlases map[AssetId]*core.TextAtlas
}

type AssetServerModule struct{}

func NewAssetServer() *AssetServer {
	return &AssetServer{
		meshes:  make(map[AssetId]core.Mesh),
		atlases: make(map[AssetId]*core.TextAtlas),
	}
}

func (server *AssetServer) AddMesh(mesh core.Mesh) AssetId {
	id := makeAssetId()
	server.meshes[id] = mesh
	return id
}

func (server *AssetServer) Mesh(id AssetId) (core.Mesh, bool) {
	m, ok := server.meshes[id]
	return m, ok
}

// LoadFont rasterises the built-in Go Regular face at size points.
func (server *AssetServer) LoadFont(size float64) (AssetId, error) {
	atlas, err := core.NewTextAtlas(size)
	if err != nil {
		return "", err
	}
	id := makeAssetId()
	server.atlases[id] = atlas
	return id, nil
}

// LoadFontFile rasterises a TrueType or OpenType file at size points.
func (server *AssetServer) LoadFontFile(filename string, size float64) (AssetId, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read font: %w", err)
	}
	atlas, err := core.NewTextAtlasFromTTF(data, size)
	if err != nil {
		return "", fmt.Errorf("font %s: %w", filename, err)
	}
	id := makeAssetId()
	server.atlases[id] = atlas
	return id, nil
}

// Atlas returns the atlas for id, or nil.
func (server *AssetServer) Atlas(id AssetId) *core.TextAtlas {
	return server.atlases[id]
}

func (AssetServerModule) Install(app *App, cmd *Commands) {
	app.addResources(NewAssetServer())
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

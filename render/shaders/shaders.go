package shaders

import (
	_ "embed"
)

//go:embed stars.wgsl
var StarsWGSL string

//go:embed silhouette.wgsl
var SilhouetteWGSL string

//go:embed text.wgsl
var TextWGSL string

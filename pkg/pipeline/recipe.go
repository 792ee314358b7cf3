// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import "fmt"

// Shape identifies a primitive construction operation.
type Shape string

const (
	ShapeCube      Shape = "cube"
	ShapeCylinder  Shape = "cylinder"
	ShapeCone      Shape = "cone"
	ShapeUVSphere  Shape = "uv_sphere"
	ShapeIcoSphere Shape = "ico_sphere"
	ShapeTorus     Shape = "torus"
)

// Vec3 is an XYZ triple. Rotations are in degrees.
type Vec3 [3]float64

var unitScale = Vec3{1, 1, 1}

// Material binds a named surface to a construction step. Name is a short
// part-local label; the renderer prefixes it with the asset id. A non-nil
// Emission makes the surface glow with the given tint and strength.
type Material struct {
	Name             string
	Base             Color
	Metallic         float64
	Roughness        float64
	Emission         *Color
	EmissionStrength float64
}

// Step is one primitive-construction operation in a recipe. The meaning of
// the dimension fields depends on Shape:
//
//	cube:       Size (edge length)
//	cylinder:   Radius, Depth, Segments (radial vertices)
//	cone:       Radius (base), Radius2 (top), Depth, Segments
//	uv_sphere:  Radius, Segments (longitudinal)
//	ico_sphere: Radius, Segments (subdivision levels)
//	torus:      Radius (major), Radius2 (minor), Segments (major segments)
type Step struct {
	Name        string
	Shape       Shape
	Size        float64
	Radius      float64
	Radius2     float64
	Depth       float64
	Segments    int
	Location    Vec3
	Rotation    Vec3
	Scale       Vec3
	Smooth      bool
	Subdivision int
	Material    Material
}

// Plan is the structured, tool-agnostic construction plan for one asset:
// an ordered list of primitive steps anchored at the origin, each named
// <assetId>_<part>.
type Plan struct {
	AssetID  string
	RegionID string
	Category Category
	Steps    []Step
}

// recipeBuilder produces the fixed step list for one category.
type recipeBuilder func(assetID string, pal PaletteColors) []Step

// recipeBuilders maps each category to its construction recipe. The
// primitive parameters in these builders are fixed domain knowledge; tests
// pin them literally.
var recipeBuilders = map[Category]recipeBuilder{
	CategoryTree:          treeRecipe,
	CategoryRockFormation: rockFormationRecipe,
	CategoryContainer:     containerRecipe,
	CategoryShrine:        shrineRecipe,
	CategoryFungus:        fungusRecipe,
	CategoryArchway:       archwayRecipe,
	CategoryPlaceholder:   placeholderRecipe,
}

// BuildRecipe combines the region's resolved palette with the category
// selected by ClassifyAsset into a construction plan. Pure: no side effects,
// no I/O. Palette resolution failures surface as geometry errors.
func BuildRecipe(asset *Asset, region *Region, regionID string, _ *Manifest) (*Plan, error) {
	pal, err := ResolvePalette(region)
	if err != nil {
		return nil, err
	}
	category := ClassifyAsset(asset.ID)
	build, ok := recipeBuilders[category]
	if !ok {
		return nil, geometryErrorf("no recipe for category %q", category)
	}
	return &Plan{
		AssetID:  asset.ID,
		RegionID: regionID,
		Category: category,
		Steps:    build(asset.ID, pal),
	}, nil
}

func partName(assetID, part string) string {
	return fmt.Sprintf("%s_%s", assetID, part)
}

// treeRecipe builds a trunk cylinder with a three-lobe icosphere canopy.
func treeRecipe(id string, pal PaletteColors) []Step {
	bark := Material{Name: "bark", Base: pal.Dark, Roughness: 0.9}
	leaves := Material{Name: "leaves", Base: pal.Primary, Roughness: 0.8}
	return []Step{
		{Name: partName(id, "trunk"), Shape: ShapeCylinder, Radius: 0.18, Depth: 2.2,
			Segments: 12, Location: Vec3{0, 0, 1.1}, Scale: unitScale, Material: bark},
		{Name: partName(id, "canopy_1"), Shape: ShapeIcoSphere, Radius: 1.0, Segments: 2,
			Location: Vec3{0, 0, 2.6}, Scale: unitScale, Smooth: true, Material: leaves},
		{Name: partName(id, "canopy_2"), Shape: ShapeIcoSphere, Radius: 0.75, Segments: 2,
			Location: Vec3{0.45, 0.3, 2.3}, Scale: unitScale, Smooth: true, Material: leaves},
		{Name: partName(id, "canopy_3"), Shape: ShapeIcoSphere, Radius: 0.55, Segments: 2,
			Location: Vec3{-0.4, -0.25, 2.45}, Scale: unitScale, Smooth: true, Material: leaves},
	}
}

// rockFormationRecipe builds a squat boulder cluster with a leaning shard.
func rockFormationRecipe(id string, pal PaletteColors) []Step {
	stone := Material{Name: "stone", Base: pal.Secondary, Roughness: 0.95}
	vein := Material{Name: "vein", Base: pal.Accent, Roughness: 0.6, Metallic: 0.3}
	return []Step{
		{Name: partName(id, "base"), Shape: ShapeIcoSphere, Radius: 1.2, Segments: 1,
			Location: Vec3{0, 0, 0.5}, Scale: Vec3{1.3, 1.0, 0.7}, Material: stone},
		{Name: partName(id, "slab"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0.8, -0.4, 0.3}, Rotation: Vec3{0, 0, 25},
			Scale: Vec3{0.9, 0.7, 0.5}, Material: stone},
		{Name: partName(id, "shard"), Shape: ShapeCone, Radius: 0.45, Radius2: 0.04,
			Depth: 2.6, Segments: 6, Location: Vec3{-0.5, 0.4, 1.3},
			Rotation: Vec3{0, 8, 0}, Scale: unitScale, Material: stone},
		{Name: partName(id, "vein"), Shape: ShapeIcoSphere, Radius: 0.35, Segments: 1,
			Location: Vec3{0.3, 0.6, 0.9}, Scale: Vec3{1.0, 0.6, 0.6}, Material: vein},
	}
}

// containerRecipe builds a banded chest: box body, rounded lid, metal
// fittings.
func containerRecipe(id string, pal PaletteColors) []Step {
	planks := Material{Name: "planks", Base: pal.Dark, Roughness: 0.85}
	fittings := Material{Name: "fittings", Base: pal.Accent, Metallic: 0.8, Roughness: 0.35}
	return []Step{
		{Name: partName(id, "body"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0, 0, 0.42}, Scale: Vec3{1.0, 0.7, 0.6}, Material: planks},
		{Name: partName(id, "lid"), Shape: ShapeCylinder, Radius: 0.35, Depth: 1.4,
			Segments: 16, Location: Vec3{0, 0, 0.84}, Rotation: Vec3{0, 90, 0},
			Scale: Vec3{1.0, 1.0, 0.6}, Material: planks},
		{Name: partName(id, "band_l"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{-0.5, 0, 0.45}, Scale: Vec3{0.06, 0.74, 0.64}, Material: fittings},
		{Name: partName(id, "band_r"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0.5, 0, 0.45}, Scale: Vec3{0.06, 0.74, 0.64}, Material: fittings},
		{Name: partName(id, "latch"), Shape: ShapeCube, Size: 0.12,
			Location: Vec3{0, -0.37, 0.6}, Scale: unitScale, Material: fittings},
	}
}

// shrineRecipe builds a plinth, column, and capital crowned by an emissive
// focus crystal ringed by a trim torus. The focus tint is violet for void-
// or aether-touched ids, orange otherwise.
func shrineRecipe(id string, pal PaletteColors) []Step {
	stone := Material{Name: "stone", Base: pal.Secondary, Roughness: 0.9}
	trim := Material{Name: "trim", Base: pal.Accent, Metallic: 0.6, Roughness: 0.4}
	tint := shrineEmissive(id)
	focus := Material{Name: "focus", Base: tint, Roughness: 0.2,
		Emission: &tint, EmissionStrength: 6.0}
	return []Step{
		{Name: partName(id, "plinth"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0, 0, 0.175}, Scale: Vec3{1.25, 1.25, 0.35}, Material: stone},
		{Name: partName(id, "column"), Shape: ShapeCylinder, Radius: 0.28, Depth: 1.5,
			Segments: 10, Location: Vec3{0, 0, 1.1}, Scale: unitScale, Material: stone},
		{Name: partName(id, "capital"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0, 0, 1.94}, Scale: Vec3{0.85, 0.85, 0.18}, Material: stone},
		{Name: partName(id, "focus"), Shape: ShapeIcoSphere, Radius: 0.26, Segments: 2,
			Location: Vec3{0, 0, 2.35}, Scale: unitScale, Smooth: true, Material: focus},
		{Name: partName(id, "sigil"), Shape: ShapeTorus, Radius: 0.45, Radius2: 0.05,
			Segments: 24, Location: Vec3{0, 0, 2.35}, Rotation: Vec3{90, 0, 0},
			Scale: unitScale, Material: trim},
	}
}

// fungusRecipe builds a glowing mushroom with two smaller sprouts.
func fungusRecipe(id string, pal PaletteColors) []Step {
	stem := Material{Name: "stem", Base: pal.Accent, Roughness: 0.7}
	capBase := pal.Primary
	cap := Material{Name: "cap", Base: capBase, Roughness: 0.5,
		Emission: &capBase, EmissionStrength: 3.5}
	return []Step{
		{Name: partName(id, "stem"), Shape: ShapeCylinder, Radius: 0.12, Depth: 0.7,
			Segments: 8, Location: Vec3{0, 0, 0.35}, Scale: unitScale, Material: stem},
		{Name: partName(id, "cap"), Shape: ShapeUVSphere, Radius: 0.45, Segments: 16,
			Location: Vec3{0, 0, 0.78}, Scale: Vec3{1.0, 1.0, 0.55}, Smooth: true, Material: cap},
		{Name: partName(id, "sprout_1_stem"), Shape: ShapeCylinder, Radius: 0.05, Depth: 0.3,
			Segments: 8, Location: Vec3{0.4, 0.2, 0.15}, Scale: unitScale, Material: stem},
		{Name: partName(id, "sprout_1_cap"), Shape: ShapeUVSphere, Radius: 0.16, Segments: 12,
			Location: Vec3{0.4, 0.2, 0.34}, Scale: Vec3{1.0, 1.0, 0.6}, Smooth: true, Material: cap},
		{Name: partName(id, "sprout_2_stem"), Shape: ShapeCylinder, Radius: 0.04, Depth: 0.22,
			Segments: 8, Location: Vec3{-0.35, 0.3, 0.11}, Scale: unitScale, Material: stem},
		{Name: partName(id, "sprout_2_cap"), Shape: ShapeUVSphere, Radius: 0.12, Segments: 12,
			Location: Vec3{-0.35, 0.3, 0.26}, Scale: Vec3{1.0, 1.0, 0.6}, Smooth: true, Material: cap},
	}
}

// archwayRecipe builds two pillars, a lintel, and a trim ring arch.
func archwayRecipe(id string, pal PaletteColors) []Step {
	stone := Material{Name: "stone", Base: pal.Secondary, Roughness: 0.9}
	trim := Material{Name: "trim", Base: pal.Accent, Metallic: 0.5, Roughness: 0.45}
	return []Step{
		{Name: partName(id, "pillar_l"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{-0.9, 0, 1.15}, Scale: Vec3{0.35, 0.35, 1.15}, Material: stone},
		{Name: partName(id, "pillar_r"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0.9, 0, 1.15}, Scale: Vec3{0.35, 0.35, 1.15}, Material: stone},
		{Name: partName(id, "lintel"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0, 0, 2.42}, Scale: Vec3{1.3, 0.4, 0.22}, Material: stone},
		{Name: partName(id, "arch"), Shape: ShapeTorus, Radius: 0.9, Radius2: 0.16,
			Segments: 24, Location: Vec3{0, 0, 2.3}, Rotation: Vec3{90, 0, 0},
			Scale: unitScale, Material: trim},
	}
}

// placeholderRecipe builds a single unit cube for ids that match no
// category rule.
func placeholderRecipe(id string, pal PaletteColors) []Step {
	base := Material{Name: "base", Base: pal.Primary, Roughness: 0.8}
	return []Step{
		{Name: partName(id, "placeholder"), Shape: ShapeCube, Size: 1.0,
			Location: Vec3{0, 0, 0.5}, Scale: unitScale, Material: base},
	}
}

// Copyright (c) 2026 Mesh Intelligence. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"strings"
)

// RenderScript turns a construction plan into the Blender Python submitted
// through the tool bridge. This is the only tool-specific stage; everything
// upstream of it is plan data. Output is deterministic: fixed statement
// order and %.3f float formatting.
func RenderScript(plan *Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n", plan.AssetID, plan.Category)
	b.WriteString("import bpy\nimport math\n\n")

	// Root empty named after the asset id; every part parents to it.
	fmt.Fprintf(&b, "root = bpy.data.objects.new(%q, None)\n", plan.AssetID)
	b.WriteString("bpy.context.collection.objects.link(root)\n")

	for _, step := range plan.Steps {
		b.WriteByte('\n')
		renderStep(&b, plan.AssetID, step)
	}

	b.WriteString("\nbpy.ops.object.select_all(action='DESELECT')\n")
	return b.String()
}

func renderStep(b *strings.Builder, assetID string, s Step) {
	switch s.Shape {
	case ShapeCube:
		fmt.Fprintf(b, "bpy.ops.mesh.primitive_cube_add(size=%s, location=%s)\n",
			f3(s.Size), vec(s.Location))
	case ShapeCylinder:
		fmt.Fprintf(b, "bpy.ops.mesh.primitive_cylinder_add(radius=%s, depth=%s, vertices=%d, location=%s)\n",
			f3(s.Radius), f3(s.Depth), s.Segments, vec(s.Location))
	case ShapeCone:
		fmt.Fprintf(b, "bpy.ops.mesh.primitive_cone_add(radius1=%s, radius2=%s, depth=%s, vertices=%d, location=%s)\n",
			f3(s.Radius), f3(s.Radius2), f3(s.Depth), s.Segments, vec(s.Location))
	case ShapeUVSphere:
		fmt.Fprintf(b, "bpy.ops.mesh.primitive_uv_sphere_add(radius=%s, segments=%d, location=%s)\n",
			f3(s.Radius), s.Segments, vec(s.Location))
	case ShapeIcoSphere:
		fmt.Fprintf(b, "bpy.ops.mesh.primitive_ico_sphere_add(radius=%s, subdivisions=%d, location=%s)\n",
			f3(s.Radius), s.Segments, vec(s.Location))
	case ShapeTorus:
		fmt.Fprintf(b, "bpy.ops.mesh.primitive_torus_add(major_radius=%s, minor_radius=%s, major_segments=%d, location=%s)\n",
			f3(s.Radius), f3(s.Radius2), s.Segments, vec(s.Location))
	}
	b.WriteString("obj = bpy.context.active_object\n")
	fmt.Fprintf(b, "obj.name = %q\n", s.Name)
	fmt.Fprintf(b, "obj.rotation_euler = %s\n", radVec(s.Rotation))
	fmt.Fprintf(b, "obj.scale = %s\n", vec(s.Scale))
	renderMaterial(b, assetID, s.Material)
	if s.Subdivision > 0 {
		fmt.Fprintf(b, "mod = obj.modifiers.new('subsurf', 'SUBSURF')\nmod.levels = %d\n", s.Subdivision)
	}
	if s.Smooth {
		b.WriteString("bpy.ops.object.shade_smooth()\n")
	}
	b.WriteString("obj.parent = root\n")
	b.WriteString("bpy.ops.object.transform_apply(location=False, rotation=True, scale=True)\n")
}

// renderMaterial fetches or creates the asset-scoped material and binds it
// to the active object. Materials are shared between steps with the same
// part-local name (e.g. both canopy lobes use "<assetId>_leaves").
func renderMaterial(b *strings.Builder, assetID string, m Material) {
	name := fmt.Sprintf("%s_%s", assetID, m.Name)
	fmt.Fprintf(b, "mat = bpy.data.materials.get(%q) or bpy.data.materials.new(%q)\n", name, name)
	b.WriteString("mat.use_nodes = True\n")
	b.WriteString("bsdf = mat.node_tree.nodes['Principled BSDF']\n")
	fmt.Fprintf(b, "bsdf.inputs['Base Color'].default_value = %s\n", rgba(m.Base))
	fmt.Fprintf(b, "bsdf.inputs['Metallic'].default_value = %s\n", f3(m.Metallic))
	fmt.Fprintf(b, "bsdf.inputs['Roughness'].default_value = %s\n", f3(m.Roughness))
	if m.Emission != nil {
		fmt.Fprintf(b, "bsdf.inputs['Emission Color'].default_value = %s\n", rgba(*m.Emission))
		fmt.Fprintf(b, "bsdf.inputs['Emission Strength'].default_value = %s\n", f3(m.EmissionStrength))
	}
	b.WriteString("obj.data.materials.append(mat)\n")
}

func f3(v float64) string {
	return fmt.Sprintf("%.3f", v)
}

func vec(v Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", f3(v[0]), f3(v[1]), f3(v[2]))
}

// radVec renders a degree triple as math.radians calls so the script stays
// readable while Blender gets radians.
func radVec(v Vec3) string {
	return fmt.Sprintf("(math.radians(%s), math.radians(%s), math.radians(%s))",
		f3(v[0]), f3(v[1]), f3(v[2]))
}

func rgba(c Color) string {
	return fmt.Sprintf("(%s, %s, %s, %s)", f3(c.R), f3(c.G), f3(c.B), f3(c.A))
}

package internal

import (
	"graphics.gd/classdb/ArrayMesh"
	"graphics.gd/classdb/BaseMaterial3D"
	"graphics.gd/classdb/Mesh"
	"graphics.gd/classdb/MeshInstance3D"
	"graphics.gd/classdb/Node3D"
	"graphics.gd/classdb/StandardMaterial3D"
	"graphics.gd/variant/Callable"
	"graphics.gd/variant/Color"
	"graphics.gd/variant/Float"
	"graphics.gd/variant/Object"
	"graphics.gd/variant/Packed"
	"graphics.gd/variant/Vector3"

	"the.quetzal.community/starling/galaxy"
)

// Galaxy renders a procedurally generated spiral galaxy as a point cloud.
// At most one cloud is live at a time: Regenerate frees the previous
// material, mesh and mesh instance before building the replacement, so no
// GPU-resident buffer outlives the cloud it belongs to.
type Galaxy struct {
	Node3D.Extension[Galaxy] `gd:"StarlingGalaxy"`

	field galaxy.Field

	points   MeshInstance3D.Instance
	mesh     ArrayMesh.Instance
	material StandardMaterial3D.Instance

	generating bool
}

// Reshape schedules a rebuild of the point cloud for the end of the
// current frame, collapsing a burst of edits into a single rebuild.
func (g *Galaxy) Reshape() {
	if !g.generating {
		Callable.Defer(Callable.New(g.Regenerate))
		g.generating = true
	}
}

// Regenerate replaces the live point cloud with one sampled from the
// current field. The old cloud is released first, bounding peak memory
// to a single extra cloud while the new one is under construction.
func (g *Galaxy) Regenerate() {
	if !g.generating {
		return
	}
	g.generating = false

	if g.points != MeshInstance3D.Nil {
		Object.Free(g.material)
		Object.Free(g.mesh)
		Object.Free(g.points)
		g.points = MeshInstance3D.Nil
	}

	positions, colors := g.field.Buffers()
	var (
		vertices = Packed.New[Vector3.XYZ]()
		tints    = Packed.New[Color.RGBA]()
	)
	for i := 0; i < len(positions); i += 3 {
		vertices.Append(Vector3.New(
			Float.X(positions[i+0]),
			Float.X(positions[i+1]),
			Float.X(positions[i+2]),
		))
		tints.Append(Color.RGBA{
			R: Float.X(colors[i+0]),
			G: Float.X(colors[i+1]),
			B: Float.X(colors[i+2]),
			A: 1,
		})
	}

	mesh := ArrayMesh.New()
	var arrays = [Mesh.ArrayMax]any{
		Mesh.ArrayVertex: vertices,
		Mesh.ArrayColor:  tints,
	}
	mesh.AddSurfaceFromArrays(Mesh.PrimitivePoints, arrays[:])
	mesh.AsMesh().SurfaceSetMaterial(0, g.pointsMaterial().AsMaterial())

	points := MeshInstance3D.New()
	points.SetMesh(mesh.AsMesh())
	g.AsNode().AddChild(points.AsNode())

	g.points = points
	g.mesh = mesh
}

// pointsMaterial configures how the particles are drawn: unshaded vertex
// colors, additive blending so overlapping particles brighten, and depth
// writes disabled so the dense core never occludes the far arms.
func (g *Galaxy) pointsMaterial() StandardMaterial3D.Instance {
	material := StandardMaterial3D.New()
	material.AsBaseMaterial3D().SetShadingMode(BaseMaterial3D.ShadingModeUnshaded)
	material.AsBaseMaterial3D().SetVertexColorUseAsAlbedo(true)
	material.AsBaseMaterial3D().SetTransparency(BaseMaterial3D.TransparencyAlpha)
	material.AsBaseMaterial3D().SetBlendMode(BaseMaterial3D.BlendModeAdd)
	material.AsBaseMaterial3D().SetDepthDrawMode(BaseMaterial3D.DepthDrawDisabled)
	material.AsBaseMaterial3D().SetUsePointSize(true)
	material.AsBaseMaterial3D().SetPointSize(Float.X(g.field.Size))
	g.material = material
	return material
}

package shader

var (
	white = Vector(1, 1, 1, 1)
	grey  = Vector(0.8, 0.8, 0.8, 1)
)

func in(name string, kind SocketKind, def Value) SocketDef {
	return SocketDef{Name: name, Kind: kind, Default: def}
}

func out(name string, kind SocketKind) SocketDef {
	return SocketDef{Name: name, Kind: kind}
}

// Builtin returns a registry preloaded with the common shader node types.
// Each call returns an independent registry that callers may extend.
func Builtin() *Registry {
	return NewRegistry(
		NodeType{
			ID: "ShaderNodeValue", Label: "Value",
			Inputs:  []SocketDef{},
			Outputs: []SocketDef{{Name: "Value", Kind: KindFloat, Default: Scalar(0.5)}},
		},
		NodeType{
			ID: "ShaderNodeRGB", Label: "RGB",
			Inputs:  []SocketDef{},
			Outputs: []SocketDef{{Name: "Color", Kind: KindColor, Default: Vector(0.5, 0.5, 0.5, 1)}},
		},
		NodeType{
			ID: "ShaderNodeMath", Label: "Math",
			Inputs: []SocketDef{
				in("Value", KindFloat, Scalar(0.5)),
				in("Value_001", KindFloat, Scalar(0.5)),
				in("Value_002", KindFloat, Scalar(0.5)),
			},
			Outputs: []SocketDef{out("Value", KindFloat)},
		},
		NodeType{
			ID: "ShaderNodeMix", Label: "Mix",
			Inputs: []SocketDef{
				in("Factor", KindFloat, Scalar(0.5)),
				in("A", KindColor, Vector(0.5, 0.5, 0.5, 1)),
				in("B", KindColor, Vector(0.5, 0.5, 0.5, 1)),
			},
			Outputs: []SocketDef{out("Result", KindColor)},
		},
		NodeType{
			ID: "ShaderNodeTexCoord", Label: "Texture Coordinate",
			Inputs: []SocketDef{},
			Outputs: []SocketDef{
				out("Generated", KindVector),
				out("Normal", KindVector),
				out("UV", KindVector),
				out("Object", KindVector),
				out("Camera", KindVector),
				out("Window", KindVector),
				out("Reflection", KindVector),
			},
		},
		NodeType{
			ID: "ShaderNodeWireframe", Label: "Wireframe",
			Inputs:  []SocketDef{in("Size", KindFloat, Scalar(0.01))},
			Outputs: []SocketDef{out("Fac", KindFloat)},
		},
		NodeType{
			ID: "ShaderNodeBsdfPrincipled", Label: "Principled BSDF",
			Inputs: []SocketDef{
				in("Base Color", KindColor, grey),
				in("Metallic", KindFloat, Scalar(0)),
				in("Roughness", KindFloat, Scalar(0.5)),
				in("IOR", KindFloat, Scalar(1.45)),
				in("Alpha", KindFloat, Scalar(1)),
				in("Normal", KindVector, Vector(0, 0, 0)),
				in("Emission Color", KindColor, white),
				in("Emission Strength", KindFloat, Scalar(0)),
			},
			Outputs: []SocketDef{out("BSDF", KindShader)},
		},
		NodeType{
			ID: "ShaderNodeBsdfDiffuse", Label: "Diffuse BSDF",
			Inputs: []SocketDef{
				in("Color", KindColor, grey),
				in("Roughness", KindFloat, Scalar(0)),
				in("Normal", KindVector, Vector(0, 0, 0)),
			},
			Outputs: []SocketDef{out("BSDF", KindShader)},
		},
		NodeType{
			ID: "ShaderNodeEmission", Label: "Emission",
			Inputs: []SocketDef{
				in("Color", KindColor, white),
				in("Strength", KindFloat, Scalar(1)),
			},
			Outputs: []SocketDef{out("Emission", KindShader)},
		},
		NodeType{
			ID: "ShaderNodeMixShader", Label: "Mix Shader",
			Inputs: []SocketDef{
				in("Fac", KindFloat, Scalar(0.5)),
				{Name: "Shader", Kind: KindShader},
				{Name: "Shader_001", Kind: KindShader},
			},
			Outputs: []SocketDef{out("Shader", KindShader)},
		},
		NodeType{
			ID: "ShaderNodeOutputMaterial", Label: "Material Output",
			Inputs: []SocketDef{
				{Name: "Surface", Kind: KindShader},
				{Name: "Volume", Kind: KindShader},
				in("Displacement", KindVector, Vector(0, 0, 0)),
			},
			Outputs: []SocketDef{},
		},
	)
}

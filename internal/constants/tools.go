package constants

// Tool names and invocation fragments used by the resolver and the pipeline.
const (
	// ToolProtoc is the protocol buffers compiler used by stage 1.
	ToolProtoc = "protoc"

	// ToolNanopbGenerator is the standalone generator executable installed by pip.
	ToolNanopbGenerator = "nanopb_generator"

	// ToolPython is the generic interpreter used for module-style invocation.
	ToolPython = "python"

	// NanopbGeneratorModule is the module path passed to `python -m`.
	NanopbGeneratorModule = "nanopb.generator.nanopb_generator"

	// NanopbPackagePattern is matched case-insensitively against package cache directory names.
	NanopbPackagePattern = "nanopb"

	// NanopbGeneratorScript is the generator script path inside a cached nanopb package.
	NanopbGeneratorScript = "generator/nanopb_generator.py"

	// VenvPython is the project-local virtual environment interpreter.
	VenvPython = ".venv/bin/python"

	// PlatformIOPackagesDir is the package cache root relative to the home directory.
	PlatformIOPackagesDir = ".platformio/packages"
)

// Command-line flags passed to external tools.
const (
	// VersionFlag is the liveness query understood by every generator candidate.
	VersionFlag = "--version"

	// FlagProtoPath tells protoc where to look for imports.
	FlagProtoPath = "--proto_path"

	// FlagDescriptorSetOut tells protoc where to write the binary descriptor.
	FlagDescriptorSetOut = "--descriptor_set_out"

	// FlagOutputDir tells the generator where to write the generated sources.
	FlagOutputDir = "--output-dir"
)

// Installation hints shown when a tool is missing.
const (
	// InstallHintGenerator is shown when no generator candidate resolved.
	InstallHintGenerator = "install the code-generation package: pip install nanopb"

	// InstallHintProtoc is shown when protoc could not be started.
	InstallHintProtoc = "install the Protocol Buffers compiler: sudo apt-get install protobuf-compiler (or: brew install protobuf)"
)

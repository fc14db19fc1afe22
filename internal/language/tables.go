package language

// Category names used to group languages in reports.
const (
	CategoryWebFrontend   = "Web Frontend"
	CategoryBackend       = "Backend"
	CategorySystems       = "Systems"
	CategoryMobile        = "Mobile"
	CategoryScripting     = "Scripting"
	CategoryData          = "Data"
	CategoryConfiguration = "Configuration"
	CategoryBuild         = "Build"
	CategoryDocumentation = "Documentation"
	CategoryOther         = "Other"
)

// categoryOrder is the canonical report order of categories.
var categoryOrder = []string{
	CategoryWebFrontend,
	CategoryBackend,
	CategorySystems,
	CategoryMobile,
	CategoryScripting,
	CategoryData,
	CategoryConfiguration,
	CategoryBuild,
	CategoryDocumentation,
	CategoryOther,
}

// filenameLanguages matches exact base names. Checked before extensions.
var filenameLanguages = map[string]string{
	"Dockerfile":         "dockerfile",
	"Containerfile":      "dockerfile",
	"Makefile":           "makefile",
	"GNUmakefile":        "makefile",
	"makefile":           "makefile",
	"CMakeLists.txt":     "cmake",
	"Rakefile":           "ruby",
	"Gemfile":            "ruby",
	"Podfile":            "ruby",
	"Vagrantfile":        "ruby",
	"Jenkinsfile":        "groovy",
	"Procfile":           "yaml",
	"BUILD":              "starlark",
	"BUILD.bazel":        "starlark",
	"WORKSPACE":          "starlark",
	"go.mod":             "go-module",
	"go.sum":             "go-checksum",
	"go.work":            "go-module",
	"package.json":       "json",
	"tsconfig.json":      "jsonc",
	"jsconfig.json":      "jsonc",
	"composer.json":      "json",
	"Cargo.toml":         "toml",
	"pyproject.toml":     "toml",
	"requirements.txt":   "pip-requirements",
	"pom.xml":            "xml",
	"build.gradle":       "groovy",
	"settings.gradle":    "groovy",
	"build.gradle.kts":   "kotlin",
	"webpack.config.js":  "javascript",
	"vite.config.ts":     "typescript",
	"LICENSE":            "text",
	"README":             "text",
	".gitattributes":     "gitattributes",
	".gitmodules":        "gitconfig",
	".editorconfig":      "editorconfig",
	".env":               "dotenv",
	".env.example":       "dotenv",
	".npmrc":             "ini",
	".babelrc":           "json",
	".eslintrc":          "json",
	".prettierrc":        "json",
	".bashrc":            "bash",
	".bash_profile":      "bash",
	".zshrc":             "bash",
	".profile":           "bash",
	".dockerignore":      "ignore",
	".ingestignore":      "ignore",
	".gitignore":         "ignore",
	"CODEOWNERS":         "codeowners",
	"Brewfile":           "ruby",
	"Justfile":           "just",
	"Caddyfile":          "caddyfile",
	"nginx.conf":         "nginx",
	"docker-compose.yml": "yaml",
}

// extensionLanguages maps lower-case extensions, including the dot, to languages.
var extensionLanguages = map[string]string{
	".js":         "javascript",
	".mjs":        "javascript",
	".cjs":        "javascript",
	".jsx":        "jsx",
	".ts":         "typescript",
	".mts":        "typescript",
	".cts":        "typescript",
	".tsx":        "tsx",
	".html":       "html",
	".htm":        "html",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".less":       "less",
	".vue":        "vue",
	".svelte":     "svelte",
	".astro":      "astro",
	".go":         "go",
	".py":         "python",
	".pyi":        "python",
	".rb":         "ruby",
	".java":       "java",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".scala":      "scala",
	".groovy":     "groovy",
	".php":        "php",
	".cs":         "csharp",
	".fs":         "fsharp",
	".ex":         "elixir",
	".exs":        "elixir",
	".erl":        "erlang",
	".hs":         "haskell",
	".clj":        "clojure",
	".ml":         "ocaml",
	".c":          "c",
	".h":          "c",
	".cc":         "cpp",
	".cpp":        "cpp",
	".cxx":        "cpp",
	".hpp":        "cpp",
	".hh":         "cpp",
	".rs":         "rust",
	".zig":        "zig",
	".asm":        "asm",
	".s":          "asm",
	".swift":      "swift",
	".m":          "objectivec",
	".mm":         "objectivec",
	".dart":       "dart",
	".sh":         "bash",
	".bash":       "bash",
	".zsh":        "bash",
	".fish":       "fish",
	".ps1":        "powershell",
	".psm1":       "powershell",
	".bat":        "batch",
	".cmd":        "batch",
	".lua":        "lua",
	".pl":         "perl",
	".pm":         "perl",
	".r":          "r",
	".jl":         "julia",
	".json":       "json",
	".jsonc":      "jsonc",
	".ndjson":     "json",
	".csv":        "csv",
	".tsv":        "csv",
	".xml":        "xml",
	".xsd":        "xml",
	".sql":        "sql",
	".graphql":    "graphql",
	".gql":        "graphql",
	".proto":      "protobuf",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".ini":        "ini",
	".cfg":        "ini",
	".conf":       "ini",
	".properties": "properties",
	".env":        "dotenv",
	".tf":         "hcl",
	".tfvars":     "hcl",
	".hcl":        "hcl",
	".nix":        "nix",
	".cmake":      "cmake",
	".mk":         "makefile",
	".gradle":     "groovy",
	".bzl":        "starlark",
	".dockerfile": "dockerfile",
	".md":         "markdown",
	".markdown":   "markdown",
	".mdx":        "mdx",
	".rst":        "rst",
	".adoc":       "asciidoc",
	".tex":        "latex",
	".txt":        "text",
	".diff":       "diff",
	".patch":      "diff",
}

// languageCategories groups languages for statistics. Languages absent here fall into CategoryOther.
var languageCategories = map[string]string{
	"javascript": CategoryWebFrontend,
	"jsx":        CategoryWebFrontend,
	"typescript": CategoryWebFrontend,
	"tsx":        CategoryWebFrontend,
	"html":       CategoryWebFrontend,
	"css":        CategoryWebFrontend,
	"scss":       CategoryWebFrontend,
	"sass":       CategoryWebFrontend,
	"less":       CategoryWebFrontend,
	"vue":        CategoryWebFrontend,
	"svelte":     CategoryWebFrontend,
	"astro":      CategoryWebFrontend,

	"go":      CategoryBackend,
	"python":  CategoryBackend,
	"ruby":    CategoryBackend,
	"java":    CategoryBackend,
	"kotlin":  CategoryBackend,
	"scala":   CategoryBackend,
	"groovy":  CategoryBackend,
	"php":     CategoryBackend,
	"csharp":  CategoryBackend,
	"fsharp":  CategoryBackend,
	"elixir":  CategoryBackend,
	"erlang":  CategoryBackend,
	"haskell": CategoryBackend,
	"clojure": CategoryBackend,
	"ocaml":   CategoryBackend,

	"c":    CategorySystems,
	"cpp":  CategorySystems,
	"rust": CategorySystems,
	"zig":  CategorySystems,
	"asm":  CategorySystems,

	"swift":      CategoryMobile,
	"objectivec": CategoryMobile,
	"dart":       CategoryMobile,

	"bash":       CategoryScripting,
	"fish":       CategoryScripting,
	"powershell": CategoryScripting,
	"batch":      CategoryScripting,
	"lua":        CategoryScripting,
	"perl":       CategoryScripting,
	"r":          CategoryScripting,
	"julia":      CategoryScripting,

	"json":     CategoryData,
	"jsonc":    CategoryData,
	"csv":      CategoryData,
	"xml":      CategoryData,
	"sql":      CategoryData,
	"graphql":  CategoryData,
	"protobuf": CategoryData,

	"yaml":          CategoryConfiguration,
	"toml":          CategoryConfiguration,
	"ini":           CategoryConfiguration,
	"properties":    CategoryConfiguration,
	"dotenv":        CategoryConfiguration,
	"editorconfig":  CategoryConfiguration,
	"gitattributes": CategoryConfiguration,
	"gitconfig":     CategoryConfiguration,
	"ignore":        CategoryConfiguration,
	"hcl":           CategoryConfiguration,
	"nix":           CategoryConfiguration,
	"nginx":         CategoryConfiguration,
	"caddyfile":     CategoryConfiguration,
	"codeowners":    CategoryConfiguration,

	"dockerfile":       CategoryBuild,
	"makefile":         CategoryBuild,
	"cmake":            CategoryBuild,
	"starlark":         CategoryBuild,
	"just":             CategoryBuild,
	"go-module":        CategoryBuild,
	"go-checksum":      CategoryBuild,
	"pip-requirements": CategoryBuild,

	"markdown": CategoryDocumentation,
	"mdx":      CategoryDocumentation,
	"rst":      CategoryDocumentation,
	"asciidoc": CategoryDocumentation,
	"latex":    CategoryDocumentation,
}

// fenceTags overrides code fence tags for languages whose identifier is not a common highlighter name.
var fenceTags = map[string]string{
	"go-module":        "go",
	"go-checksum":      "",
	"pip-requirements": "",
	"ignore":           "gitignore",
	"codeowners":       "",
	"text":             "",
}

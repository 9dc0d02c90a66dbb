package runner

type Runtime struct {
	Language string `json:"language"`
	Version  string `json:"version"`
}

// Runtimes is the fixed language table offered by the editor.
var Runtimes = []Runtime{
	{Language: "javascript", Version: "18.15.0"},
	{Language: "typescript", Version: "5.0.3"},
	{Language: "python", Version: "3.10.0"},
	{Language: "java", Version: "15.0.2"},
	{Language: "csharp", Version: "6.12.0"},
	{Language: "php", Version: "8.2.3"},
}

func VersionOf(language string) (string, bool) {
	for _, r := range Runtimes {
		if r.Language == language {
			return r.Version, true
		}
	}
	return "", false
}

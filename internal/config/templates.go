package config

import (
	"fmt"
	"os"
)

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const template = `# jpegsan settings
output = "out.jpg"
viewer = "xdg-open"
viewer_args = []

# reject files with bytes before the first marker
strict = false

# marker segments removed before saving
strip = ["COM"]

list_raw = true
# hex bytes shown per raw span; -1 shows all, 0 none
raw_preview = 16
`

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/headerx/internal/config"
	"github.com/jorge-barreto/headerx/internal/ux"
)

const ExampleSource = "example.c"

var configTemplate = `# headerx project defaults. Command-line flags override these values.

# Directory that header file names are resolved against (default: cwd).
# output-dir: include

# Fail when a //HEADERX block is still open at end of file.
strict: false

# Emit '#line N "file"' after the include guard.
line-directives: true

verbose: false
color: true
`

var exampleTemplate = `#include <stdio.h>
#include "example.h"

//HEADERX(example.h,EXAMPLE_H)
void example_hello(const char *name);
//ENDX

void example_hello(const char *name)
{
	printf("hello, %s\n", name);
}
`

// Init writes a default config file and an example mixed source file to targetDir.
func Init(targetDir string, out *ux.Printer) error {
	configPath := filepath.Join(targetDir, config.DefaultFile)
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.DefaultFile, targetDir)
	}
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", config.DefaultFile, err)
	}

	created := []string{config.DefaultFile}
	examplePath := filepath.Join(targetDir, ExampleSource)
	if _, err := os.Stat(examplePath); os.IsNotExist(err) {
		if err := os.WriteFile(examplePath, []byte(exampleTemplate), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", ExampleSource, err)
		}
		created = append(created, ExampleSource)
	}

	fmt.Fprintf(out.Out, "\n%s\n\n", out.Paint(ux.Green, "✓ Initialized headerx"))
	fmt.Fprintf(out.Out, "  Created:\n")
	for _, name := range created {
		fmt.Fprintf(out.Out, "    %s\n", out.Paint(ux.Cyan, name))
	}
	fmt.Fprintf(out.Out, "\n  Next steps:\n")
	fmt.Fprintf(out.Out, "    1. Run %s to preview\n", out.Paint(ux.Cyan, "headerx -n "+ExampleSource))
	fmt.Fprintf(out.Out, "    2. Run %s to write the header\n\n", out.Paint(ux.Cyan, "headerx "+ExampleSource))
	return nil
}

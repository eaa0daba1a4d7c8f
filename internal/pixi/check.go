package pixi

import (
	"os/exec"
	"strings"
)

// InstallURL is where the pixi project documents installation.
const InstallURL = "https://pixi.sh"

// ToolStatus represents the installation status of the tool.
type ToolStatus struct {
	Installed bool
	Version   string
	Path      string
}

// CheckTool checks whether name is on PATH and asks it for its version.
func CheckTool(name string) ToolStatus {
	path, err := exec.LookPath(name)
	if err != nil {
		return ToolStatus{Installed: false}
	}

	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return ToolStatus{Installed: true, Path: path}
	}

	// Output is like "pixi 0.39.2"
	version := strings.TrimSpace(string(out))
	if fields := strings.Fields(version); len(fields) > 0 {
		version = fields[len(fields)-1]
	}

	return ToolStatus{
		Installed: true,
		Version:   version,
		Path:      path,
	}
}

// InstallInstructions returns the lines telling a user how to install the tool on goos.
func InstallInstructions(tool, goos string) []string {
	lines := []string{tool + " command not found. Please install " + tool + " first:"}
	if tool != "pixi" {
		return append(lines, "  make sure "+tool+" is installed and on your PATH")
	}

	switch goos {
	case "windows":
		lines = append(lines, "  powershell -ExecutionPolicy ByPass -c \"irm -useb https://pixi.sh/install.ps1 | iex\"")
	case "darwin":
		lines = append(lines, "  brew install pixi", "  # or", "  curl -fsSL https://pixi.sh/install.sh | bash")
	default:
		lines = append(lines, "  curl -fsSL https://pixi.sh/install.sh | bash")
	}
	return append(lines, "Visit: "+InstallURL)
}

package preflight

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/buivietphi/ft-patch-package/internal/config"
	"github.com/joho/godotenv"
)

func resolveAgainst(workDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

func probeWorkDirExists(target Target) Finding {
	finding := Finding{Probe: "workdir-exists"}
	info, err := os.Stat(target.WorkDir)
	switch {
	case err != nil:
		finding.Status = StatusFail
		finding.Detail = fmt.Sprintf("%s does not exist", target.WorkDir)
	case !info.IsDir():
		finding.Status = StatusFail
		finding.Detail = fmt.Sprintf("%s is not a directory", target.WorkDir)
	default:
		finding.Status = StatusOK
		finding.Detail = target.WorkDir
	}
	return finding
}

func probeWorkDirWritable(target Target) Finding {
	finding := Finding{Probe: "workdir-writable"}
	if status := dirWritable(target.WorkDir); status != "" {
		finding.Status = StatusFail
		finding.Detail = status
		return finding
	}
	finding.Status = StatusOK
	finding.Detail = "write access confirmed"
	return finding
}

func probePatchDir(target Target) Finding {
	finding := Finding{Probe: "patch-dir"}
	patchDir := resolveAgainst(target.WorkDir, target.PatchDir)
	if patchDir == "" {
		finding.Status = StatusWarn
		finding.Detail = "no patch directory configured"
		return finding
	}
	info, err := os.Stat(patchDir)
	switch {
	case err != nil:
		finding.Status = StatusWarn
		finding.Detail = fmt.Sprintf("%s will be created on first use", patchDir)
	case !info.IsDir():
		finding.Status = StatusFail
		finding.Detail = fmt.Sprintf("%s is not a directory", patchDir)
	default:
		if status := dirWritable(patchDir); status != "" {
			finding.Status = StatusFail
			finding.Detail = status
			return finding
		}
		finding.Status = StatusOK
		finding.Detail = patchDir
	}
	return finding
}

func probeConfig(target Target) Finding {
	finding := Finding{Probe: "config"}
	configPath := filepath.Join(target.WorkDir, config.FileName)
	if _, err := os.Stat(configPath); err != nil {
		finding.Status = StatusOK
		finding.Detail = "no config file, defaults in use"
		return finding
	}
	if _, err := config.Load(target.WorkDir); err != nil {
		finding.Status = StatusFail
		finding.Detail = err.Error()
		return finding
	}
	finding.Status = StatusOK
	finding.Detail = fmt.Sprintf("%s is valid", config.FileName)
	return finding
}

func probeEnvFile(target Target) Finding {
	finding := Finding{Probe: "env-file"}
	envFile := target.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	envPath := resolveAgainst(target.WorkDir, envFile)
	if _, err := os.Stat(envPath); err != nil {
		finding.Status = StatusOK
		finding.Detail = "no .env file"
		return finding
	}
	entries, err := godotenv.Read(envPath)
	if err != nil {
		finding.Status = StatusWarn
		finding.Detail = fmt.Sprintf("%s cannot be parsed: %v", envPath, err)
		return finding
	}
	finding.Status = StatusOK
	finding.Detail = fmt.Sprintf("%d entries", len(entries))
	return finding
}

// dirWritable returns an empty string when a file can be created and removed
// inside dir, or a description of the failure.
func dirWritable(dir string) string {
	probe, err := os.CreateTemp(dir, ".ft-patch-probe-*")
	if err != nil {
		return fmt.Sprintf("cannot write inside %s: %v", dir, err)
	}
	name := probe.Name()
	if err := probe.Close(); err != nil {
		return fmt.Sprintf("cannot close probe file in %s: %v", dir, err)
	}
	if err := os.Remove(name); err != nil {
		return fmt.Sprintf("cannot remove probe file in %s: %v", dir, err)
	}
	return ""
}

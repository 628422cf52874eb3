// Package preflight checks the environment before patch operations run. It
// powers the doctor command: each probe inspects one aspect of the target
// directories and reports an OK, WARN or FAIL finding with a short detail.
package preflight

// Status classifies a finding.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Finding is the outcome of a single probe.
type Finding struct {
	Probe  string
	Status Status
	Detail string
}

// Target names the directories and files the probes inspect. PatchDir and
// EnvFile are resolved relative to WorkDir when not absolute.
type Target struct {
	WorkDir  string
	PatchDir string
	EnvFile  string
}

// Probe checks one aspect of the environment.
type Probe struct {
	Name string
	Run  func(target Target) Finding
}

// Probes returns the default probe set in execution order.
func Probes() []Probe {
	return []Probe{
		{Name: "workdir-exists", Run: probeWorkDirExists},
		{Name: "workdir-writable", Run: probeWorkDirWritable},
		{Name: "patch-dir", Run: probePatchDir},
		{Name: "config", Run: probeConfig},
		{Name: "env-file", Run: probeEnvFile},
	}
}

// RunAll executes every probe in order and collects the findings.
func RunAll(target Target) []Finding {
	probes := Probes()
	findings := make([]Finding, 0, len(probes))
	for _, probe := range probes {
		findings = append(findings, probe.Run(target))
	}
	return findings
}

// HasFailure reports whether any finding carries StatusFail.
func HasFailure(findings []Finding) bool {
	for _, finding := range findings {
		if finding.Status == StatusFail {
			return true
		}
	}
	return false
}

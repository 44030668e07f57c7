package descriptor

import "encoding/json"

// ScanResult is the terminal outcome of resolving a single module.
// Exactly one of Module or Entry is set on success, depending on Source;
// consumers must handle both variants explicitly.
type ScanResult struct {
	Success bool
	Source  Source
	Module  *Module // set when Source == SourceModuleJSON
	Entry   *Entry  // set when Source == SourceCentral
	Error   string  // set when Success is false
}

// OwnDescriptor builds a successful result from a repository's own descriptor.
func OwnDescriptor(m *Module) ScanResult {
	return ScanResult{Success: true, Source: SourceModuleJSON, Module: m}
}

// CentralEntry builds a successful result from a central registry entry.
func CentralEntry(e *Entry) ScanResult {
	return ScanResult{Success: true, Source: SourceCentral, Entry: e}
}

// Failure builds a failed result with the given reason.
func Failure(reason string) ScanResult {
	return ScanResult{Success: false, Error: reason}
}

// Data returns the resolved document regardless of variant, or nil on failure.
func (r ScanResult) Data() any {
	switch {
	case !r.Success:
		return nil
	case r.Source == SourceCentral:
		return r.Entry
	default:
		return r.Module
	}
}

// MarshalJSON renders the result as the discriminated union shape
// {success, source, data} or {success, error}.
func (r ScanResult) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{Success: false, Error: r.Error})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Source  Source `json:"source"`
		Data    any    `json:"data"`
	}{Success: true, Source: r.Source, Data: r.Data()})
}

package api

// ListModelsResponse is the body of GET /api/tags.
type ListModelsResponse struct {
	Models []Model `json:"models"`
}

// Model describes one locally available model.
type Model struct {
	Name       string       `json:"name"`
	ModifiedAt string       `json:"modified_at"`
	Size       int64        `json:"size"`
	Digest     string       `json:"digest"`
	Details    ModelDetails `json:"details"`
}

// ModelDetails carries format and quantization metadata for a model.
type ModelDetails struct {
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

// ListRunningModelsResponse is the body of GET /api/ps.
type ListRunningModelsResponse struct {
	Models []RunningModel `json:"models"`
}

// RunningModel describes one model currently loaded in memory.
type RunningModel struct {
	Model         string              `json:"model"`
	Size          int64               `json:"size"`
	Digest        string              `json:"digest"`
	Details       RunningModelDetails `json:"details"`
	ExpiresAt     string              `json:"expires_at"`
	SizeVRAM      int64               `json:"size_vram"`
	ContextLength int64               `json:"context_length"`
}

// RunningModelDetails mirrors ModelDetails with the parent model included.
type RunningModelDetails struct {
	ParentModel       string   `json:"parent_model"`
	Format            string   `json:"format"`
	Family            string   `json:"family"`
	Families          []string `json:"families"`
	ParameterSize     string   `json:"parameter_size"`
	QuantizationLevel string   `json:"quantization_level"`
}

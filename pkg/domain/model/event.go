package model

// DeployEvent is the payload posted to an OpsLevel deploy webhook for one
// qualifying build completion.
type DeployEvent struct {
	DedupID      string    `json:"dedup_id"`
	DeployNumber string    `json:"deploy_number"`
	DeployURL    string    `json:"deploy_url"`
	DeployedAt   string    `json:"deployed_at"` // RFC 3339, UTC, whole seconds
	Description  string    `json:"description"`
	Environment  string    `json:"environment"`
	Service      string    `json:"service"`
	Deployer     *Deployer `json:"deployer,omitempty"`
	Commit       *Commit   `json:"commit,omitempty"`
}

// Deployer identifies who triggered the deploy. Each field appears only
// when its override is configured.
type Deployer struct {
	ID    *string `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// IsZero reports whether no deployer field is set. An all-empty deployer
// is dropped from the event instead of serialized as {}.
func (x *Deployer) IsZero() bool {
	return x == nil || (x.ID == nil && x.Name == nil && x.Email == nil)
}

// Commit describes the revision the build deployed. Branch and Message are
// pointers so that a value recovered as empty still serializes, while an
// unavailable one is omitted.
type Commit struct {
	SHA     string  `json:"sha"`
	Branch  *string `json:"branch,omitempty"`
	Message *string `json:"message,omitempty"`
}

// PublishResult is the outcome of one delivered deploy event: the event
// that went out and the raw response body the webhook returned.
type PublishResult struct {
	Event    *DeployEvent
	Response string
}

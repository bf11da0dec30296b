// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

// AgentCard is the capability descriptor an agent publishes at its
// well-known URL. It tells callers what the agent does, where to reach
// it and which optional protocol features it supports.
type AgentCard struct {
	// Name is a human readable name for the agent.
	Name string `json:"name"`

	// Description is a human readable description of what the agent does.
	Description string `json:"description,omitzero"`

	// URL is the endpoint the agent serves its preferred transport on.
	URL string `json:"url"`

	// Version is the agent's own version string.
	Version string `json:"version"`

	// ProtocolVersion is the A2A protocol version the agent implements.
	ProtocolVersion string `json:"protocolVersion,omitzero"`

	// PreferredTransport names the transport served at URL. Empty means
	// JSONRPC.
	PreferredTransport TransportProtocol `json:"preferredTransport,omitzero"`

	// AdditionalInterfaces lists further transport/URL combinations the
	// agent is reachable on.
	AdditionalInterfaces []AgentInterface `json:"additionalInterfaces,omitzero"`

	// Provider identifies the organization behind the agent.
	Provider *AgentProvider `json:"provider,omitzero"`

	// IconURL points at an icon for the agent.
	IconURL string `json:"iconUrl,omitzero"`

	// DocumentationURL points at human readable documentation.
	DocumentationURL string `json:"documentationUrl,omitzero"`

	// Capabilities declares the optional protocol features the agent
	// supports.
	Capabilities AgentCapabilities `json:"capabilities"`

	// DefaultInputModes lists the media types the agent accepts.
	DefaultInputModes []string `json:"defaultInputModes"`

	// DefaultOutputModes lists the media types the agent produces.
	DefaultOutputModes []string `json:"defaultOutputModes"`

	// Skills enumerates what the agent can do.
	Skills []AgentSkill `json:"skills"`

	// SecuritySchemes declares the authentication schemes the agent
	// understands, keyed by scheme name.
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitzero"`

	// Security lists the scheme/scope combinations required to call the
	// agent.
	Security []map[string][]string `json:"security,omitzero"`
}

// AgentInterface pairs a transport protocol with the URL it is served on.
type AgentInterface struct {
	Transport TransportProtocol `json:"transport"`
	URL       string            `json:"url"`
}

// AgentProvider identifies the organization that operates an agent.
type AgentProvider struct {
	Organization string `json:"organization"`
	URL          string `json:"url,omitzero"`
}

// AgentCapabilities declares the optional protocol features an agent
// supports.
type AgentCapabilities struct {
	// Streaming indicates support for message/stream and
	// tasks/resubscribe.
	Streaming bool `json:"streaming,omitzero"`

	// PushNotifications indicates support for the
	// tasks/pushNotificationConfig methods.
	PushNotifications bool `json:"pushNotifications,omitzero"`

	// StateTransitionHistory indicates the agent keeps a status history
	// on its tasks.
	StateTransitionHistory bool `json:"stateTransitionHistory,omitzero"`
}

// AgentSkill describes one capability of an agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitzero"`
	Tags        []string `json:"tags,omitzero"`
	Examples    []string `json:"examples,omitzero"`
	InputModes  []string `json:"inputModes,omitzero"`
	OutputModes []string `json:"outputModes,omitzero"`
}

// SecurityScheme describes one authentication scheme from an agent card.
// Only the fields the session layer needs are modeled.
type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme,omitzero"`
	BearerFormat string `json:"bearerFormat,omitzero"`
	In           string `json:"in,omitzero"`
	Name         string `json:"name,omitzero"`
	Description  string `json:"description,omitzero"`
}

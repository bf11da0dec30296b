// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

// MessageSendParams is the params object of message/send and
// message/stream.
type MessageSendParams struct {
	Message       *Message           `json:"message"`
	Configuration *MessageSendConfig `json:"configuration,omitzero"`
	Metadata      map[string]any     `json:"metadata,omitzero"`
}

// MessageSendConfig tunes how the agent handles a sent message.
type MessageSendConfig struct {
	AcceptedOutputModes    []string                `json:"acceptedOutputModes,omitzero"`
	HistoryLength          *int                    `json:"historyLength,omitzero"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig,omitzero"`
	Blocking               bool                    `json:"blocking,omitzero"`
}

// TaskQueryParams is the params object of tasks/get.
type TaskQueryParams struct {
	ID string `json:"id"`

	// HistoryLength bounds how many history messages the agent returns.
	// Nil leaves the agent's default in place.
	HistoryLength *int `json:"historyLength,omitzero"`

	Metadata map[string]any `json:"metadata,omitzero"`
}

// TaskIDParams is the params object of tasks/cancel and
// tasks/resubscribe.
type TaskIDParams struct {
	ID       string         `json:"id"`
	Metadata map[string]any `json:"metadata,omitzero"`
}

// PushNotificationConfig tells an agent where to deliver task updates
// out of band.
type PushNotificationConfig struct {
	// ID distinguishes multiple configs on the same task.
	ID string `json:"id,omitzero"`

	// URL is the webhook endpoint the agent POSTs updates to.
	URL string `json:"url"`

	// Token is echoed back by the agent in the
	// X-A2A-Notification-Token header so receivers can check provenance.
	Token string `json:"token,omitzero"`

	Authentication *PushNotificationAuthInfo `json:"authentication,omitzero"`
}

// PushNotificationAuthInfo describes how the agent authenticates to the
// webhook endpoint.
type PushNotificationAuthInfo struct {
	Schemes     []string `json:"schemes"`
	Credentials string   `json:"credentials,omitzero"`
}

// TaskPushNotificationConfig binds a PushNotificationConfig to a task.
// It is both the params object of tasks/pushNotificationConfig/set and
// the result shape of set/get/list.
type TaskPushNotificationConfig struct {
	TaskID                 string                 `json:"taskId"`
	PushNotificationConfig PushNotificationConfig `json:"pushNotificationConfig"`
}

// GetTaskPushNotificationConfigParams is the params object of
// tasks/pushNotificationConfig/get.
type GetTaskPushNotificationConfigParams struct {
	ID string `json:"id"`

	// PushNotificationConfigID selects one config when the task has
	// several.
	PushNotificationConfigID string `json:"pushNotificationConfigId,omitzero"`
}

// ListTaskPushNotificationConfigParams is the params object of
// tasks/pushNotificationConfig/list.
type ListTaskPushNotificationConfigParams struct {
	ID string `json:"id"`
}

// DeleteTaskPushNotificationConfigParams is the params object of
// tasks/pushNotificationConfig/delete.
type DeleteTaskPushNotificationConfigParams struct {
	ID                       string `json:"id"`
	PushNotificationConfigID string `json:"pushNotificationConfigId"`
}

// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/alDuncanson/handler/a2a"
)

// Push notification configuration management. These are stateless
// passthroughs to the agent's tasks/pushNotificationConfig methods;
// the agent owns all config state.

// SetPushConfig registers a webhook for task updates. url is the
// endpoint the agent will POST to; token, when non-empty, is echoed
// back in the X-A2A-Notification-Token header of every delivery.
func (s *Session) SetPushConfig(ctx context.Context, taskID, url, token string) (*a2a.TaskPushNotificationConfig, error) {
	if taskID == "" {
		return nil, &ValidationError{Field: "task id", Reason: "must not be empty"}
	}
	if url == "" {
		return nil, &ValidationError{Field: "push url", Reason: "must not be empty"}
	}

	rpc, _, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	params := &a2a.TaskPushNotificationConfig{
		TaskID: taskID,
		PushNotificationConfig: a2a.PushNotificationConfig{
			ID:    uuid.NewString(),
			URL:   url,
			Token: token,
		},
	}

	var result a2a.TaskPushNotificationConfig
	if _, err := rpc.call(ctx, a2a.MethodPushConfigSet, params, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetPushConfig fetches one push config of a task. configID may be
// empty when the task has a single config.
func (s *Session) GetPushConfig(ctx context.Context, taskID, configID string) (*a2a.TaskPushNotificationConfig, error) {
	if taskID == "" {
		return nil, &ValidationError{Field: "task id", Reason: "must not be empty"}
	}

	rpc, _, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	params := &a2a.GetTaskPushNotificationConfigParams{
		ID:                       taskID,
		PushNotificationConfigID: configID,
	}

	var result a2a.TaskPushNotificationConfig
	if _, err := rpc.call(ctx, a2a.MethodPushConfigGet, params, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// ListPushConfigs lists every push config registered on a task.
func (s *Session) ListPushConfigs(ctx context.Context, taskID string) ([]*a2a.TaskPushNotificationConfig, error) {
	if taskID == "" {
		return nil, &ValidationError{Field: "task id", Reason: "must not be empty"}
	}

	rpc, _, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	var result []*a2a.TaskPushNotificationConfig
	if _, err := rpc.call(ctx, a2a.MethodPushConfigList, &a2a.ListTaskPushNotificationConfigParams{ID: taskID}, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// DeletePushConfig removes a push config from a task.
func (s *Session) DeletePushConfig(ctx context.Context, taskID, configID string) error {
	if taskID == "" {
		return &ValidationError{Field: "task id", Reason: "must not be empty"}
	}
	if configID == "" {
		return &ValidationError{Field: "config id", Reason: "must not be empty"}
	}

	rpc, _, err := s.connect(ctx)
	if err != nil {
		return err
	}

	params := &a2a.DeleteTaskPushNotificationConfigParams{
		ID:                       taskID,
		PushNotificationConfigID: configID,
	}
	_, err = rpc.call(ctx, a2a.MethodPushConfigDelete, params, nil)

	return err
}

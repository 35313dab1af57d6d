package service

import "go.opentelemetry.io/otel/attribute"

func userAttr(id string) attribute.KeyValue      { return attribute.String("projecthub.user_id", id) }
func workspaceAttr(id string) attribute.KeyValue { return attribute.String("projecthub.workspace_id", id) }
func projectAttr(id string) attribute.KeyValue   { return attribute.String("projecthub.project_id", id) }
func taskAttr(id string) attribute.KeyValue      { return attribute.String("projecthub.task_id", id) }

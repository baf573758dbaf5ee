// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability provides lightweight operation timing and
// structured JSON operation records for the pipeline and its surfaces.
package observability

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// ObservabilityLevel controls how much the observer emits.
type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// StandardObserver implements observability for all components.
type StandardObserver struct {
	level  ObservabilityLevel
	writer io.Writer
}

// NewStandardObserver creates an observer writing to the given sink.
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	return &StandardObserver{
		level:  level,
		writer: writer,
	}
}

// Level returns the configured observability level.
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function to complete timing for one operation.
func (o *StandardObserver) StartTiming(component, operation, subject string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		duration := time.Since(start)

		o.LogOperation(OperationRecord{
			Component:  component,
			Operation:  operation,
			Subject:    subject,
			DurationMs: duration.Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// LogOperation writes one operation record. Records are only serialized in
// debug mode; at lower levels the call is a no-op.
func (o *StandardObserver) LogOperation(record OperationRecord) {
	if o.level != ObservabilityDebug || o.writer == nil {
		return
	}

	record.RequestID = uuid.NewString()
	json.NewEncoder(o.writer).Encode(record)
}

// OperationRecord is one structured observability entry.
type OperationRecord struct {
	Component  string                 `json:"component"`
	Operation  string                 `json:"operation"`
	RequestID  string                 `json:"request_id"`
	Subject    string                 `json:"subject,omitempty"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Copyright 2022 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package swparse

import "github.com/sirupsen/logrus"

// DiagnosticKind is the §7 taxonomy, minus Fatal (which propagates as a Go
// error from Parse rather than living in this slice).
type DiagnosticKind int

const (
	DiagWarning DiagnosticKind = iota
	DiagUnhandled
	DiagSkip
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagWarning:
		return "WARNING"
	case DiagUnhandled:
		return "UNHANDLED"
	case DiagSkip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic is one recoverable parse-time anomaly: a 0-based line and its
// file, the offending line text, and a human-readable message.
type Diagnostic struct {
	Kind    DiagnosticKind
	File    string
	Line    int
	Text    string
	Message string
}

// diagnosticSink accumulates diagnostics for one Parser invocation and
// mirrors them to the configured logger.
type diagnosticSink struct {
	logger      *logrus.Logger
	diagnostics []Diagnostic
}

func newDiagnosticSink(logger *logrus.Logger) *diagnosticSink {
	return &diagnosticSink{logger: logger}
}

func (d *diagnosticSink) warn(message, file string, line int, text string) {
	d.record(DiagWarning, message, file, line, text)
	d.logger.WithFields(logrus.Fields{"file": file, "line": line, "text": text}).Warn(message)
}

func (d *diagnosticSink) unhandled(message, file string, line int, text string) {
	d.record(DiagUnhandled, message, file, line, text)
	d.logger.WithFields(logrus.Fields{"file": file, "line": line, "text": text}).Warn("unhandled: " + message)
}

func (d *diagnosticSink) skip(message, file string, line int, text string) {
	d.record(DiagSkip, message, file, line, text)
	d.logger.WithFields(logrus.Fields{"file": file, "line": line, "text": text}).Info("skip: " + message)
}

func (d *diagnosticSink) debug(settings Settings, message string) {
	if settings.PrintDebug {
		d.logger.Debug(message)
	}
}

func (d *diagnosticSink) record(kind DiagnosticKind, message, file string, line int, text string) {
	d.diagnostics = append(d.diagnostics, Diagnostic{
		Kind:    kind,
		File:    file,
		Line:    line,
		Text:    text,
		Message: message,
	})
}

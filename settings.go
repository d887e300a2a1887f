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

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Settings is the process-wide configuration plumbed to a Parse call. It is
// a plain value (per the Design Notes: "passed as a configuration value...
// not ambient mutable state") so parses stay composable and independently
// reproducible.
type Settings struct {
	WarnUTF8BOM           bool
	WarnIncludeGuardName  bool
	WarnSpacing           bool
	PrintUnusedDefines    bool
	PrintSkippedTypedefs  bool
	FakeGameServerInterfaces bool
	PrintDebug            bool

	Logger *logrus.Logger
}

// Option configures a Settings value.
type Option func(*Settings)

// NewSettings builds a Settings value with every flag defaulted off and a
// discard logger, then applies the given options.
func NewSettings(opts ...Option) Settings {
	s := Settings{Logger: discardLogger()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.Logger == nil {
		s.Logger = discardLogger()
	}
	return s
}

func WithWarnUTF8BOM() Option          { return func(s *Settings) { s.WarnUTF8BOM = true } }
func WithWarnIncludeGuardName() Option { return func(s *Settings) { s.WarnIncludeGuardName = true } }
func WithWarnSpacing() Option          { return func(s *Settings) { s.WarnSpacing = true } }
func WithPrintUnusedDefines() Option   { return func(s *Settings) { s.PrintUnusedDefines = true } }
func WithPrintSkippedTypedefs() Option { return func(s *Settings) { s.PrintSkippedTypedefs = true } }
func WithFakeGameServerInterfaces() Option {
	return func(s *Settings) { s.FakeGameServerInterfaces = true }
}
func WithPrintDebug() Option { return func(s *Settings) { s.PrintDebug = true } }

// WithLogger plumbs a caller-supplied logger instead of the discard default.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Settings) { s.Logger = l }
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

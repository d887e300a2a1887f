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

// Package swparse ingests a directory of Steamworks SDK C/C++ headers and
// builds an in-memory semantic model of the public interface: preprocessor
// state, typedefs, enums, structs, unions, callback structs, interface
// classes and their member functions, and the byte-level memory layout of
// every record type under the SDK's packing rules.
//
// The input is not a complete C++ translation unit: preprocessor
// conditionals are never evaluated, and a restricted line-oriented state
// machine recognizes the subset of C++ the SDK headers actually use. The
// headline output is the layout engine's pack-awareness classification:
// which record types have a memory layout that depends on the platform's
// default struct alignment (4 vs 8 bytes).
package swparse

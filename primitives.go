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

// skippedFiles is the §6 input-surface skip list: files whose name
// matches are never read, regardless of their ".h" extension.
var skippedFiles = map[string]bool{
	"steam_api_flat.h":          true, // Valve's flat C API, not this dialect
	"isteamps3overlayrenderer.h": true, // PS3-only
	"steamps3params.h":          true, // PS3-only
	"isteamcontroller.h":        true, // deprecated, moved to isteaminput.h
	"isteamdualsense.h":         true, // non-Steam code
}

// skippedLines is the §4.1/§6 marker blacklist: any line containing one of
// these substrings is dropped before any recognizer sees it.
var skippedLines = []string{
	"STEAM_CLANG_ATTR",
	"#define VALVE_BIG_ENDIAN",

	"public:",
	"private:",
	"protected:",
	"_STEAM_CALLBACK_",
	"#define STEAM_CALLBACK_BEGIN",
	"#define STEAM_CALLBACK_END",
	"#define STEAM_CALLBACK_MEMBER",
	"STEAM_DEFINE_INTERFACE_ACCESSOR",
}

// funcAttribNames is the closed set of function attribute macro names (§6).
var funcAttribNames = []string{
	"STEAM_METHOD_DESC",
	"STEAM_IGNOREATTR",
	"STEAM_CALL_RESULT",
	"STEAM_CALL_BACK",
	"STEAM_FLAT_NAME",
}

// argAttribNames is the closed set of argument attribute macro names (§6).
var argAttribNames = []string{
	"STEAM_ARRAY_COUNT",
	"STEAM_ARRAY_COUNT_D",
	"STEAM_BUFFER_COUNT",
	"STEAM_DESC",
	"STEAM_OUT_ARRAY_CALL",
	"STEAM_OUT_ARRAY_COUNT",
	"STEAM_OUT_BUFFER_COUNT",
	"STEAM_OUT_STRING",
	"STEAM_OUT_STRING_COUNT",
	"STEAM_OUT_STRUCT",
}

// gameServerCandidates is the §6 list of files whose ISteam interfaces are
// cloned into a derived "ISteamGameServer..." copy when
// Settings.FakeGameServerInterfaces is set.
var gameServerCandidates = map[string]bool{
	"isteamclient.h":               true,
	"isteamhttp.h":                 true,
	"isteaminventory.h":             true,
	"isteamnetworking.h":            true,
	"isteamnetworkingmessages.h":    true,
	"isteamnetworkingsockets.h":     true,
	"isteamnetworkingutils.h":       true,
	"isteamugc.h":                   true,
	"isteamutils.h":                 true,
}

// ignoredStructuralHelpers are SDK callback-plumbing base classes whose
// bodies are skipped wholesale; they never produce a Record (§4.3 item 8).
var ignoredStructuralHelpers = map[string]bool{
	"CCallResult":     true,
	"CCallback":       true,
	"CCallbackBase":   true,
	"CCallbackImpl":   true,
	"CCallbackManual": true,
}

// primitiveType is one entry of the §6 primitive type table.
type primitiveType struct {
	CanonicalName string
	Size          Extent
	Align         Extent
}

// primitiveTypes maps every C-style primitive spelling the SDK headers use
// to its canonical name, size and alignment (§6).
var primitiveTypes = map[string]primitiveType{
	"char":           {"char", Concrete(1), Concrete(1)},
	"bool":           {"bool", Concrete(1), Concrete(1)},
	"unsigned char":  {"unsigned char", Concrete(1), Concrete(1)},
	"signed char":    {"signed char", Concrete(1), Concrete(1)},
	"short":          {"short", Concrete(2), Concrete(2)},
	"unsigned short": {"unsigned short", Concrete(2), Concrete(2)},
	"int":            {"int", Concrete(4), Concrete(4)},
	"unsigned int":   {"unsigned int", Concrete(4), Concrete(4)},
	"long long":          {"long long", Concrete(8), Concrete(8)},
	"unsigned long long": {"unsigned long long", Concrete(8), Concrete(8)},
	"float":              {"float", Concrete(4), Concrete(4)},
	"double":             {"double", Concrete(8), Concrete(8)},

	// SDK's own fixed-width spellings (steamtypes.h), added directly since
	// this parser never evaluates that header's own typedef chain.
	"uint8":  {"unsigned char", Concrete(1), Concrete(1)},
	"int8":   {"signed char", Concrete(1), Concrete(1)},
	"int16":  {"short", Concrete(2), Concrete(2)},
	"uint16": {"unsigned short", Concrete(2), Concrete(2)},
	"int32":  {"int", Concrete(4), Concrete(4)},
	"uint32": {"unsigned int", Concrete(4), Concrete(4)},
	"int64":  {"long long", Concrete(8), Concrete(8)},
	"uint64": {"unsigned long long", Concrete(8), Concrete(8)},

	"unsigned __int8": {"unsigned char", Concrete(1), Concrete(1)},
	"__int8":          {"signed char", Concrete(1), Concrete(1)},
	"__int16":         {"short", Concrete(2), Concrete(2)},
	"unsigned __int16": {"unsigned short", Concrete(2), Concrete(2)},
	"__int32":          {"int", Concrete(4), Concrete(4)},
	"unsigned __int32":  {"unsigned int", Concrete(4), Concrete(4)},
	"__int64":           {"long long", Concrete(8), Concrete(8)},
	"unsigned __int64":   {"unsigned long long", Concrete(8), Concrete(8)},

	"uint8_t":  {"unsigned char", Concrete(1), Concrete(1)},
	"sint8_t":  {"signed char", Concrete(1), Concrete(1)},
	"int16_t":  {"short", Concrete(2), Concrete(2)},
	"uint16_t": {"unsigned short", Concrete(2), Concrete(2)},
	"int32_t":  {"int", Concrete(4), Concrete(4)},
	"uint32_t": {"unsigned int", Concrete(4), Concrete(4)},
	"int64_t":  {"long long", Concrete(8), Concrete(8)},
	"uint64_t": {"unsigned long long", Concrete(8), Concrete(8)},

	"intptr": {"intptr", IntPtr(), IntPtr()},
	"intp":   {"intp", IntPtr(), IntPtr()},
	"uintp":  {"uintp", IntPtr(), IntPtr()},
	"void*":  {"void*", IntPtr(), IntPtr()},

	"long int":          {"long int", Concrete(8), Concrete(8)},
	"unsigned long int": {"unsigned long int", Concrete(8), Concrete(8)},
}

// specialStructs maps a closed set of record names whose layout is never
// computed structurally; they carry a pre-declared (size, alignment) (§6).
var specialStructs = map[string]primitiveType{
	"CSteamID": {"unsigned long long", Concrete(8), Concrete(8)},
	"CGameID":  {"unsigned long long", Concrete(8), Concrete(8)},
	"SteamIPAddress_t": {"SteamIPAddress_t", Concrete(16 + 4), Concrete(1)},
	"SteamNetworkingIdentity": {"SteamNetworkingIdentity", Concrete(4 + 128), Concrete(1)},
	// Contains bit fields whose size can't be represented as a byte count.
	"SteamIDComponent_t": {"SteamIDComponent_t", Concrete(8), Concrete(8)},
}

// skippedStructs names records whose layout is structurally unsound to
// compute (nested anonymous fragments, duplicate definitions across
// conditionally-compiled headers) and are therefore never generated
// downstream even though they parse cleanly.
var skippedStructs = map[string]bool{
	"SteamNetworkingIPAddr":        true,
	"SteamNetworkingMessage_t":     true,
	"SteamNetworkingConfigValue_t": true,
	"SteamDatagramHostedAddress":   true,
	"SteamDatagramRelayAuthTicket": true,
	"SteamIDComponent_t":           true,
	"GameID_t":                     true,
}

// continuationPolicy maps a record name to the zero-based source line at
// which its closing brace should be treated as continuing the struct body
// rather than ending it. This replaces a single hard-coded CSteamID
// special case with a data table, per the Design Notes.
var continuationPolicy = map[string]int{
	"CSteamID": 850,
}

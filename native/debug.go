// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

// DebugSource identifies the component that emitted a debug message.
type DebugSource uint8

// Debug message sources.
const (
	SourceAPI DebugSource = iota
	SourceWindowSystem
	SourceShaderCompiler
	SourceThirdParty
	SourceApplication
	SourceOther
)

func (s DebugSource) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceWindowSystem:
		return "window system"
	case SourceShaderCompiler:
		return "shader compiler"
	case SourceThirdParty:
		return "third party"
	case SourceApplication:
		return "application"
	}
	return "other"
}

// DebugType is the category of a debug message.
type DebugType uint8

// Debug message categories.
const (
	TypeError DebugType = iota
	TypeDeprecatedBehavior
	TypeUndefinedBehavior
	TypePortability
	TypePerformance
	TypeMarker
	TypePushGroup
	TypePopGroup
	TypeOther
)

func (t DebugType) String() string {
	switch t {
	case TypeError:
		return "error"
	case TypeDeprecatedBehavior:
		return "deprecated behavior"
	case TypeUndefinedBehavior:
		return "undefined behavior"
	case TypePortability:
		return "portability"
	case TypePerformance:
		return "performance"
	case TypeMarker:
		return "marker"
	case TypePushGroup:
		return "push group"
	case TypePopGroup:
		return "pop group"
	}
	return "other"
}

// Actionable reports whether messages of this category point at a problem in
// the caller's use of the device.
func (t DebugType) Actionable() bool {
	switch t {
	case TypeError, TypeDeprecatedBehavior, TypeUndefinedBehavior, TypePortability, TypePerformance:
		return true
	}
	return false
}

// DebugSeverity is the severity of a debug message.
type DebugSeverity uint8

// Debug message severities. SeverityUnknown is reported for values the
// driver sends that have no mapping.
const (
	SeverityHigh DebugSeverity = iota
	SeverityMedium
	SeverityLow
	SeverityNotification
	SeverityUnknown
)

func (s DebugSeverity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	case SeverityNotification:
		return "notification"
	}
	return "unknown"
}

// DebugMessage is one message delivered by the driver.
type DebugMessage struct {
	Source   DebugSource
	Type     DebugType
	ID       uint32
	Severity DebugSeverity
	Message  string
}

// DebugFunc receives driver messages. It may be called from inside any
// Device method and must not call back into the device.
type DebugFunc func(DebugMessage)

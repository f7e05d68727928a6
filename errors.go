// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glctx

import (
	"errors"
	"fmt"

	"github.com/gogpu/glctx/native"
)

// Error kinds. Every error returned by this package matches one of these
// with errors.Is.
var (
	// ErrInvalidContext is returned by New when the device cannot be loaded
	// or does not meet the minimum version.
	ErrInvalidContext = errors.New("glctx: invalid context")

	// ErrResourceNotFound is returned when a handle does not resolve.
	ErrResourceNotFound = errors.New("glctx: resource not found")

	// ErrConversionFailed is returned when a size, offset or count does not
	// fit the parameter type of the native call.
	ErrConversionFailed = errors.New("glctx: conversion failed")

	// ErrShaderCompile is returned when a stage fails to compile.
	ErrShaderCompile = errors.New("glctx: shader compile failed")

	// ErrShaderLink is returned when a program fails to link.
	ErrShaderLink = errors.New("glctx: shader link failed")

	// ErrUnsupportedTopology is returned by Draw for a primitive topology
	// the device cannot draw.
	ErrUnsupportedTopology = errors.New("glctx: unsupported primitive topology")

	// ErrExternal is matched by errors from collaborators wrapped in
	// ExternalError.
	ErrExternal = errors.New("glctx: external error")
)

// ConversionError reports which value did not fit the native parameter type.
type ConversionError struct {
	// Field describes the conversion, e.g. "buffer length into i32".
	Field string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("glctx: conversion failed: %s", e.Field)
}

// Is reports whether target is ErrConversionFailed.
func (e *ConversionError) Is(target error) bool { return target == ErrConversionFailed }

func conversionError(field string) error { return &ConversionError{Field: field} }

// CompileError carries the compiler output of a failed stage.
type CompileError struct {
	Stage native.ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glctx: %s stage compile failed: %s", e.Stage, e.Log)
}

// Is reports whether target is ErrShaderCompile.
func (e *CompileError) Is(target error) bool { return target == ErrShaderCompile }

// LinkError carries the linker output of a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("glctx: shader link failed: %s", e.Log)
}

// Is reports whether target is ErrShaderLink.
func (e *LinkError) Is(target error) bool { return target == ErrShaderLink }

// VersionError is returned by New when the device version is too old.
type VersionError struct {
	Major, Minor         int
	WantMajor, WantMinor int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("glctx: invalid context: version %d.%d, need at least %d.%d",
		e.Major, e.Minor, e.WantMajor, e.WantMinor)
}

// Is reports whether target is ErrInvalidContext.
func (e *VersionError) Is(target error) bool { return target == ErrInvalidContext }

// ExternalError wraps an error returned by a collaborator, such as the
// device loader or the image utilities.
type ExternalError struct {
	Op  string
	Err error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("glctx: %s: %v", e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error { return e.Err }

// Is reports whether target is ErrExternal.
func (e *ExternalError) Is(target error) bool { return target == ErrExternal }

// notFound annotates ErrResourceNotFound with the handle that failed.
func notFound(kind string, h fmt.Stringer) error {
	return fmt.Errorf("%w: %s %v", ErrResourceNotFound, kind, h)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	KeyFileAlreadyExists         = ExistsError("key file already exists")

	DocumentNotFound = NotFoundError("document not found")
	KeyNotFound      = NotFoundError("key not found")

	EmptyKey                  = InvalidError("empty key")
	InvalidBackend            = InvalidError("invalid storage backend")
	InvalidBlock              = InvalidError("invalid block")
	InvalidLoggerChannel      = InvalidError("invalid logger channel")
	InvalidPoolTag            = InvalidError("invalid pool tag")
	InvalidPrivateKeyFile     = InvalidError("invalid private key file")
	InvalidPublicKeyFile      = InvalidError("invalid public key file")
	MalformedRequest          = InvalidError("malformed request")
	MissingParameters         = InvalidError("missing parameters")
	NotInitialised            = InvalidError("not initialised")
	RateLimiting              = InvalidError("rate limiting")
	ConnectionLimitIsTooSmall = InvalidError("connection limit is too small")

	EventQueueFull     = ProcessError("event queue full")
	LedgerTimeout      = ProcessError("ledger timeout")
	LedgerUnavailable  = ProcessError("ledger unavailable")
	ResolverFailed     = ProcessError("resolver failed")
	StorageReadFailed  = ProcessError("storage read failed")
	StorageWriteFailed = ProcessError("storage write failed")

	ConfigurationNotTable = RecordError("configuration did not return a table")
	CounterRecordCorrupt  = RecordError("counter record corrupt")
	UnterminatedDirective = RecordError("unterminated dynamic directive")
	UnknownEventFormat    = RecordError("unknown event format")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }

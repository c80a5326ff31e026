// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package errors defines common error types used throughout the N42 codebase.
// This package provides a centralized location for error definitions to ensure
// consistency and avoid duplication across modules.
package errors

import (
	"errors"
	"fmt"
)

// =====================
// Block & Chain Errors
// =====================

var (
	// ErrInvalidBlock is returned when a block fails validation.
	ErrInvalidBlock = errors.New("invalid block")

	// ErrBannedHash is returned if a block to import is on the banned list.
	ErrBannedHash = errors.New("banned hash")

	// ErrNoGenesis is returned when there is no Genesis Block.
	ErrNoGenesis = errors.New("genesis not found in chain")

	// ErrGenesisNoConfig is returned when genesis has no chain configuration.
	ErrGenesisNoConfig = errors.New("genesis has no chain configuration")

	// ErrSideChainReceipts is returned when trying to accept side blocks as ancient chain data.
	ErrSideChainReceipts = errors.New("side blocks can't be accepted as ancient chain data")
)

// =====================
// Transaction Errors
// =====================

// Transaction pre-checking errors. All state transition messages will
// be pre-checked before execution. If any invalidation detected, the corresponding
// error should be returned which is defined here.
//
// - If the pre-checking happens in the miner, then the transaction won't be packed.
// - If the pre-checking happens in the block processing procedure, then a "BAD BLOCK"
// error should be emitted.
var (
	// ErrNonceTooLow is returned if the nonce of a transaction is lower than the
	// one present in the local chain.
	ErrNonceTooLow = errors.New("nonce too low")

	// ErrNonceTooHigh is returned if the nonce of a transaction is higher than the
	// next one expected based on the local chain.
	ErrNonceTooHigh = errors.New("nonce too high")

	// ErrNonceMax is returned if the nonce of a transaction sender account has
	// maximum allowed value and would become invalid if incremented.
	ErrNonceMax = errors.New("nonce has max value")

	// ErrGasLimitReached is returned by the gas pool if the amount of gas required
	// by a transaction is higher than what's left in the block.
	ErrGasLimitReached = errors.New("gas limit reached")

	// ErrInsufficientFundsForTransfer is returned if the transaction sender doesn't
	// have enough funds for transfer (topmost call only).
	ErrInsufficientFundsForTransfer = errors.New("insufficient funds for transfer")

	// ErrInsufficientFunds is returned if the total cost of executing a transaction
	// is higher than the balance of the user's account.
	ErrInsufficientFunds = errors.New("insufficient funds for gas * price + value")

	// ErrGasUintOverflow is returned when calculating gas usage.
	ErrGasUintOverflow = errors.New("gas uint64 overflow")

	// ErrIntrinsicGas is returned if the transaction is specified to use less gas
	// than required to start the invocation.
	ErrIntrinsicGas = errors.New("intrinsic gas too low")

	// ErrTxTypeNotSupported is returned if a transaction is not supported in the
	// current network configuration.
	ErrTxTypeNotSupported = errors.New("transaction type not supported")

	// ErrTipAboveFeeCap is a sanity error to ensure no one is able to specify a
	// transaction with a tip higher than the total fee cap.
	ErrTipAboveFeeCap = errors.New("max priority fee per gas higher than max fee per gas")

	// ErrTipVeryHigh is a sanity error to avoid extremely big numbers specified
	// in the tip field.
	ErrTipVeryHigh = errors.New("max priority fee per gas higher than 2^256-1")

	// ErrFeeCapVeryHigh is a sanity error to avoid extremely big numbers specified
	// in the fee cap field.
	ErrFeeCapVeryHigh = errors.New("max fee per gas higher than 2^256-1")

	// ErrFeeCapTooLow is returned if the transaction fee cap is less than the
	// the base fee of the block.
	ErrFeeCapTooLow = errors.New("max fee per gas less than block base fee")

	// ErrSenderNoEOA is returned if the sender of a transaction is a contract.
	ErrSenderNoEOA = errors.New("sender not an eoa")

	// ErrAlreadyDeposited is returned when trying to deposit again.
	ErrAlreadyDeposited = errors.New("already deposited")
)

// =====================
// PubSub & Network Errors
// =====================

var (
	// ErrInvalidPubSub is returned when PubSub is nil.
	ErrInvalidPubSub = errors.New("pubsub is nil")

	// ErrMessageNotMapped is returned when message type is not mapped to a PubSub topic.
	ErrMessageNotMapped = errors.New("message type is not mapped to a PubSub topic")

	// ErrInvalidFetchedData is returned when invalid data is returned from peer.
	ErrInvalidFetchedData = errors.New("invalid data returned from peer")
)

// =====================
// Database Errors
// =====================

var (
	// ErrKeyNotFound is returned when a key is not found in the database.
	ErrKeyNotFound = errors.New("db: key not found")

	// ErrInvalidSize is returned when a number has an invalid size.
	ErrInvalidSize = errors.New("bit endian number has an invalid size")
)

// =====================
// ABI Codec Errors
// =====================

var (
	// ErrInvalidParamType is returned when a parameter type string cannot
	// be parsed into a known ParamType.
	ErrInvalidParamType = errors.New("abi: invalid parameter type")

	// ErrInvalidLength is returned when an encoded or decoded length
	// (array size, fixed-bytes width, tuple arity) is inconsistent with
	// the declared type.
	ErrInvalidLength = errors.New("abi: invalid length")

	// ErrValueOutOfRange is returned when a Go value does not fit the
	// bit width of the ParamType it is being encoded against.
	ErrValueOutOfRange = errors.New("abi: value out of range for type")

	// ErrInvalidDecodeDataSize is returned when the input to the decoder
	// is shorter than the fixed 32-byte head region requires.
	ErrInvalidDecodeDataSize = errors.New("abi: invalid data size for decoding")

	// ErrInvalidAbiSignature is returned when a computed selector does not
	// match the expected 4-byte prefix of the input.
	ErrInvalidAbiSignature = errors.New("abi: selector mismatch")

	// ErrBufferOverrun is returned when decoding would read past max_bytes.
	ErrBufferOverrun = errors.New("abi: decode exceeds max_bytes bound")

	// ErrJunkData is returned when trailing bytes remain after decoding
	// and DecodeOptions.AllowJunkData is false.
	ErrJunkData = errors.New("abi: trailing junk data after decode")

	// ErrArenaReleased is returned when an arena is used or released a
	// second time after its decoded value tree has already been freed.
	ErrArenaReleased = errors.New("abi: arena already released")
)

// =====================
// RLP Errors
// =====================

var (
	// ErrUnexpectedEnd is returned when an RLP header promises more
	// payload than the input contains.
	ErrUnexpectedEnd = errors.New("rlp: unexpected end of input")

	// ErrNonMinimalRLPLength is returned when a length prefix is used
	// where the canonical form requires the single-byte or short form.
	ErrNonMinimalRLPLength = errors.New("rlp: non-canonical length encoding")
)

// =====================
// Transaction Assertion Errors
// =====================

var (
	// ErrInvalidChainId is returned when a transaction's chain id does
	// not match the configured network.
	ErrInvalidChainId = errors.New("transaction: chain id mismatch")

	// ErrTransactionTipTooHigh is returned when maxPriorityFeePerGas
	// exceeds maxFeePerGas.
	ErrTransactionTipTooHigh = errors.New("transaction: tip higher than fee cap")

	// ErrEmptyBlobs is returned when a blob envelope carries zero
	// versioned hashes.
	ErrEmptyBlobs = errors.New("transaction: blob envelope has no blobs")

	// ErrTooManyBlobs is returned when a blob envelope exceeds the
	// per-block blob cap.
	ErrTooManyBlobs = errors.New("transaction: too many blobs")

	// ErrBlobVersionNotSupported is returned when a versioned hash's
	// first byte is not the KZG version.
	ErrBlobVersionNotSupported = errors.New("transaction: unsupported blob versioned hash")

	// ErrCreateBlobTransaction is returned when a blob envelope has a
	// nil `to` (contract creation via a blob transaction is forbidden).
	ErrCreateBlobTransaction = errors.New("transaction: blob transactions cannot create contracts")

	// ErrUnsupportedTransactionType is returned when decoding encounters
	// a type byte with no registered envelope.
	ErrUnsupportedTransactionType = errors.New("transaction: unsupported transaction type")
)

// =====================
// EVM Errors
// =====================

var (
	// ErrStackUnderflow is returned when an opcode pops more values than
	// the stack holds.
	ErrStackUnderflow = errors.New("vm: stack underflow")

	// ErrStackOverflow is returned when a push would exceed the maximum
	// stack depth.
	ErrStackOverflow = errors.New("vm: stack overflow")

	// ErrOutOfGas is returned when the gas tracker cannot afford a
	// requested charge.
	ErrOutOfGas = errors.New("vm: out of gas")

	// ErrOverflow is returned when a 256-bit value does not fit the
	// platform's usize when used as an offset or length.
	ErrOverflow = errors.New("vm: value overflows usize")

	// ErrInstructionNotEnabled is returned when an opcode is executed
	// under a fork configuration that has not activated it.
	ErrInstructionNotEnabled = errors.New("vm: instruction not enabled")

	// ErrOutOfMemory is returned when an allocation cannot be satisfied.
	ErrOutOfMemory = errors.New("vm: out of memory")
)

// =====================
// Helper Functions
// =====================

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}


package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups every error registered by tessobs
const Codespace = "tessobs"

// Code 1 is reserved by the registry for internal errors.
var (
	ErrTargetNotFound       = errorsmod.Register(Codespace, 2, "target name failed to resolve")
	ErrResolverUnavailable  = errorsmod.Register(Codespace, 3, "name resolver unavailable")
	ErrMalformedCoordinates = errorsmod.Register(Codespace, 4, "malformed sexagesimal coordinates")
	ErrLongitudeOutOfRange  = errorsmod.Register(Codespace, 5, "ecliptic longitude outside sampled antisolar range")
	ErrInvalidConfig        = errorsmod.Register(Codespace, 6, "invalid configuration")
)

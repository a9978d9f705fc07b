// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// ErrInvalidRequest is returned when a caller-supplied request fails basic
// structural validation (missing key, empty username, …) before any
// storage or crypto work is attempted.
var ErrInvalidRequest = errors.New("service: invalid request")

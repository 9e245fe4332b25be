// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package tally aggregates responses into per-option counts and a word
// frequency ranking. Results are recomputed from the full response list on
// every call.
package tally

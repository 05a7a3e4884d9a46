// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry records per-turn usage locally for the stats command.
//
// Every completed turn (successful or not) is appended to a SQLite
// database under ~/.genz/. Nothing leaves the machine; the data exists so
// the user can see their own model usage, failure rates, and latency.
package telemetry

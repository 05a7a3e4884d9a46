// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the translated interface strings and resolves a
// user-supplied language preference to one of the built-in packs.
//
// Indonesian is the default language, matching the service's home
// audience. English and Japanese packs are complete alternatives; any
// unrecognized preference falls back to Indonesian.
package i18n

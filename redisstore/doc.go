// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package redisstore keeps decisions in Redis so several processes can share
// them.
//
// Each decision is a JSON value under "decide:decision:{id}". The sets
// "decide:decisions", "decide:decisions:active", and
// "decide:decisions:finalized" index ids for List. Update is an optimistic
// WATCH/MULTI transaction keyed on the decision's version.
package redisstore

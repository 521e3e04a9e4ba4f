// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

// Package authz provides authorization using Casbin.
//
// The embedded model is RBAC with keyMatch2 path matching. Roles come from
// the validated token claims; admin inherits every user permission. The
// embedded policy lets users read the whole API and write their own
// favorites and playlists. Admins may do anything. Both files can be
// replaced through security.casbin_model_path and security.casbin_policy_path.
package authz

// Package securestore is the local encrypted key/value store of the client.
//
// Values live in the secure_values table of an SQLite database and are sealed
// with AES-256-GCM. The key comes from a KeySource: either a passphrase
// stretched with argon2id (salt kept in store_meta) or a random device key
// file. A verifier in store_meta detects a wrong passphrase or key file.
//
// Keys and defaults:
//
//	user_token             string
//	user_id                int
//	user_email             string
//	calorie_goal           int     2000
//	notifications_enabled  bool    true
//	dark_mode              bool    false
//	diet_type              string  "balanced"
//
// ClearUserData removes only the three session keys; preferences survive
// logout.
package securestore

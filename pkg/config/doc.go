/*
Package config provides configuration management for ocifs with multi-source support.

Settings load from YAML files and environment variables with the usual
precedence: compiled-in defaults, then the file, then OCIFS_* environment
variables, then programmatic overrides via WithOverrides.

# Configuration file format

	auth:
	  tenancy_id: ocid1.tenancy.oc1..example
	  user_id: ocid1.user.oc1..example
	  key_fingerprint: "20:3b:97:13:55:1c:5b:0d:d3:37:d8:50:4e:c5:3a:34"
	  key_file: /etc/ocifs/api_key.pem

	bucket:
	  namespace: axaxnpcrorw5
	  region: us-phoenix-1
	  bucket: media
	  storage_tier: Standard
	  path_prefix: uploads

	http:
	  timeouts:
	    connect: 10s
	    request: 60s

	logging:
	  level: INFO
	  format: json

Environment variable mapping:

	OCIFS_TENANCY_ID, OCIFS_USER_ID, OCIFS_KEY_FINGERPRINT,
	OCIFS_KEY_FILE, OCIFS_PRIVATE_KEY,
	OCIFS_NAMESPACE, OCIFS_REGION, OCIFS_BUCKET,
	OCIFS_STORAGE_TIER, OCIFS_PATH_PREFIX, OCIFS_ENDPOINT,
	OCIFS_CONNECT_TIMEOUT, OCIFS_REQUEST_TIMEOUT,
	OCIFS_LOG_LEVEL, OCIFS_LOG_FORMAT

# Validation

Validate reports every missing required key in a single error, then
checks value shapes: the key fingerprint must be sixteen colon-separated
hex byte pairs, the region must look like us-phoenix-1 (unless an
explicit endpoint override is set), and the storage tier must be one of
the three service tiers or empty.

Settings are treated as immutable once a client is constructed from
them. WithOverrides returns a modified copy and never touches the
receiver, so one base configuration can safely fan out to many buckets.
*/
package config

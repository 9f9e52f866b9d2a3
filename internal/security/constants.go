package security

const (
	// KeyringService is the service name used for keyring entries.
	KeyringService = "hdfs-connect"

	errKeyringNotAvailable = "keyring not available"
	checkKey               = "__hdfs_connect_check__"
	keyPassphraseFmt       = "passphrase:%s"
)

package entities

// SshCredentials identifies the key pair and remote username used to reach
// a provisioned instance. Paths are not validated at construction —
// existence is checked only when a tool actually needs to read them.
type SshCredentials struct {
	PrivateKeyPath string   `json:"private_key_path"`
	PublicKeyPath  string   `json:"public_key_path"`
	Username       Username `json:"username"`
}

// NewSshCredentials rejects empty key paths and constructs SshCredentials.
func NewSshCredentials(privateKeyPath, publicKeyPath string, username Username) (SshCredentials, error) {
	if privateKeyPath == "" {
		return SshCredentials{}, newValidationError("private_key_path", privateKeyPath, "must not be empty")
	}
	if publicKeyPath == "" {
		return SshCredentials{}, newValidationError("public_key_path", publicKeyPath, "must not be empty")
	}
	return SshCredentials{
		PrivateKeyPath: privateKeyPath,
		PublicKeyPath:  publicKeyPath,
		Username:       username,
	}, nil
}

package auth

var loginMessages = map[string]string{
	CodeInvalidEmail:    "Invalid email address",
	CodeUserNotFound:    "User not found",
	CodeWrongPassword:   "Incorrect password",
	CodeTooManyRequests: "Too many login attempts. Please try again later.",
}

// LoginMessage mengubah error login menjadi pesan untuk pengguna.
// Kode yang tidak dikenal jatuh ke pesan error aslinya.
func LoginMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := loginMessages[Code(err)]; ok {
		return msg
	}
	return err.Error()
}

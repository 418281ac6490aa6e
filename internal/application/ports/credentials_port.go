package ports

// PasswordHasher puerto del verificador de credenciales (bcrypt en infraestructura).
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify devuelve false si el password no corresponde al hash.
	Verify(password, hash string) bool
}

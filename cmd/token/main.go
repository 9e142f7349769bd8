// Comando token: emite un JWT para un usuario y rol, firmado con JWT_SECRET.
// La gestión de usuarios vive fuera de este servicio; este comando sirve para
// integraciones y pruebas manuales.
//
//	token -user-id 1 -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-pos/pkg/config"
	"github.com/jhoicas/Inventario-pos/pkg/jwt"
)

func main() {
	userID := flag.Int64("user-id", 0, "usuario actuante")
	role := flag.String("role", "", "admin | bodeguero | vendedor")
	flag.Parse()

	switch *role {
	case "admin", "bodeguero", "vendedor":
	default:
		fmt.Fprintln(os.Stderr, "uso: token -user-id <id> -role admin|bodeguero|vendedor")
		os.Exit(2)
	}
	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "-user-id debe ser mayor que cero")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

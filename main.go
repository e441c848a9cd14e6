package main

import (
	"log"

	"github.com/jkate0000007/eve-platform/db"
	_ "github.com/jkate0000007/eve-platform/docs"
	"github.com/jkate0000007/eve-platform/routes"
	"github.com/jkate0000007/eve-platform/utils"

	"github.com/gin-gonic/gin"
)

// @title API Eve Platform
// @version 1.0
// @description API du site de contenu fan/créateur Eve (posts, abonnements, apple gifts)
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Entrez le JWT avec le préfixe Bearer: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	// Initialiser la base de données
	db.InitDB()

	// Initialiser le stockage de contenu (bucket privé, URLs signées)
	if err := utils.InitStorage(); err != nil {
		log.Printf("Avertissement: Initialisation du stockage a échoué: %v", err)
		log.Println("Le téléversement des médias ne fonctionnera pas correctement.")
	}

	// Initialiser Cloudinary (avatars)
	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Avertissement: Initialisation de Cloudinary a échoué: %v", err)
		log.Println("Le téléchargement des avatars ne fonctionnera pas correctement.")
	}

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Erreur lors du démarrage du serveur:", err)
	}
}

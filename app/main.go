package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/openmuse/gallery/internal/catalog"
	"github.com/openmuse/gallery/internal/repository"
	badgerRepo "github.com/openmuse/gallery/internal/repository/badger"
	myRedisCache "github.com/openmuse/gallery/internal/repository/redis"
	"github.com/openmuse/gallery/internal/social"
	"github.com/openmuse/gallery/internal/store"
	"github.com/openmuse/gallery/internal/workers"

	"github.com/openmuse/gallery/internal/rest"
	"github.com/openmuse/gallery/internal/rest/middleware"
	"github.com/openmuse/gallery/internal/usecase/artwork"
	"github.com/openmuse/gallery/internal/usecase/comment"
	"github.com/openmuse/gallery/internal/usecase/like"
)

const (
	defaultTimeout         = 30
	defaultAddress         = ":9090"
	defaultCacheDB         = 0
	defaultDataDir         = "./data"
	defaultRefreshInterval = 30
	httpClientTimeoutSec   = 15
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare local archive
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	archiveDB, err := badgerdb.Open(badgerdb.DefaultOptions(dataDir).WithLogger(nil))
	if err != nil {
		log.Fatal("failed to open local archive", err)
	}
	defer func() {
		if err := archiveDB.Close(); err != nil {
			log.Fatal("got error when closing the archive", err)
		}
	}()

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second
	route.Use(middleware.SetRequestContextWithTimeout(timeoutContext))

	httpClient := &http.Client{Timeout: httpClientTimeoutSec * time.Second}

	// Artwork相关的三层架构
	// 1. 上游目录层
	catalogBaseURL := os.Getenv("CATALOG_BASE_URL")
	if catalogBaseURL == "" {
		catalogBaseURL = catalog.DefaultBaseURL
	}
	catalogClient := catalog.NewClient(catalogBaseURL, httpClient)
	// 2. Cache层
	artworkCache := myRedisCache.NewArtworkCache(client)
	// 3. Repository协调层
	artworkRepo := repository.NewArtworkRepository(catalogClient, artworkCache)

	// Prepare stores
	archive := badgerRepo.NewLikedArchive(archiveDB)
	likedStore := store.NewLikedArtworks(archive)
	countStore := store.NewLikeCounts()

	restored, err := archive.Load(context.Background())
	if err != nil {
		log.Printf("failed to restore liked artworks, starting empty: %v", err)
	} else {
		likedStore.Replace(restored)
	}

	socialBaseURL := os.Getenv("SOCIAL_BASE_URL")
	if socialBaseURL == "" {
		log.Fatal("SOCIAL_BASE_URL is required")
	}
	socialClient := social.NewClient(socialBaseURL, httpClient)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refreshIntervalStr := os.Getenv("LIKES_REFRESH_INTERVAL")
	refreshInterval, err := strconv.Atoi(refreshIntervalStr)
	if err != nil {
		log.Println("failed to parse likes refresh interval, using default")
		refreshInterval = defaultRefreshInterval
	}
	likesRefresher := workers.NewRefreshLikesWorker(socialClient, countStore, likedStore, time.Duration(refreshInterval)*time.Second)
	go likesRefresher.Start(ctx)

	// Build service Layer
	artworkSvc := artwork.NewService(artworkRepo, nil)
	likeSvc := like.NewService(likedStore, countStore, socialClient, likesRefresher)
	commentSvc := comment.NewService(socialClient)

	artworkHandler := rest.NewArtworkHandler(artworkSvc)
	likeHandler := rest.NewLikeHandler(likeSvc, artworkSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)

	// Register routes
	route.GET("/artworks", artworkHandler.Fetch)
	route.GET("/artworks/search", artworkHandler.Search)
	route.GET("/artworks/:id", artworkHandler.GetByID)

	route.GET("/departments", artworkHandler.Departments)
	route.GET("/departments/:id/artworks", artworkHandler.FetchByDepartment)

	route.GET("/artworks/:id/likes", likeHandler.GetLikes)
	route.POST("/artworks/:id/like", likeHandler.Toggle)
	route.GET("/liked", likeHandler.ListLiked)
	route.DELETE("/liked/:id", likeHandler.RemoveLiked)

	route.GET("/artworks/:id/comments", commentHandler.FetchByArtwork)
	route.POST("/artworks/:id/comments", commentHandler.Create)

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}

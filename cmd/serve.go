package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on changes",
	Long: `The serve command performs an initial build, starts a local web server
for the output directory, and watches the content, layouts, and static
directories, rebuilding the site when they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("Performing initial build...")
		if err := runBuild(appConfig, siteParams); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		defer watcher.Close()

		go watchAndRebuild(watcher)

		for _, rootPath := range []string{appConfig.ContentDir, appConfig.LayoutsDir, appConfig.StaticDir} {
			if _, statErr := os.Stat(rootPath); os.IsNotExist(statErr) {
				log.Printf("Directory %q not found, not watching.", rootPath)
				continue
			}
			// fsnotify is not recursive; watch every subdirectory.
			err = filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					log.Printf("Error walking %s: %v", path, err)
					return nil
				}
				if d.IsDir() {
					if watchErr := watcher.Add(path); watchErr != nil {
						log.Printf("Failed to watch %s: %v", path, watchErr)
					}
				}
				return nil
			})
			if err != nil {
				log.Printf("Error setting up watch for %s: %v", rootPath, err)
			}
		}

		serverAddr := fmt.Sprintf(":%d", serverPort)
		log.Printf("Serving %q on http://localhost%s", appConfig.OutputDir, serverAddr)

		fileServer := http.FileServer(http.Dir(appConfig.OutputDir))
		http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
				if _, err := os.Stat(filepath.Join(appConfig.OutputDir, r.URL.Path, "index.html")); os.IsNotExist(err) {
					http.NotFound(w, r)
					return
				}
			}
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			fileServer.ServeHTTP(w, r)
		})

		return http.ListenAndServe(serverAddr, nil)
	},
}

// watchAndRebuild debounces watcher events and reruns the build. A broken
// edit logs the validation error and keeps serving the last good output.
func watchAndRebuild(watcher *fsnotify.Watcher) {
	var buildTimer *time.Timer
	const debounce = 500 * time.Millisecond

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			log.Printf("Change detected: %s (%s)", event.Name, event.Op.String())

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					log.Printf("Error watching new directory %s: %v", event.Name, err)
				}
			}

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounce, func() {
				log.Println("Rebuilding site...")
				if err := runBuild(appConfig, siteParams); err != nil {
					log.Printf("Rebuild failed: %v", err)
				} else {
					log.Println("Site rebuilt.")
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func isDir(path string) bool {
	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}

package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/diorama/engine/assets/loaders"
	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetEvent reports that an indexed asset was written, created or removed.
type AssetEvent struct {
	Path    string
	Type    metadata.ResourceType
	Removed bool
}

/**
 * @brief Indexes every known asset under a base directory, loads them through
 * per-type loaders and, when watching, reports changes on Changes().
 */
type AssetManager struct {
	baseDir string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done      chan struct{}
	closeOnce sync.Once
	fsnotify  *fsnotify.Watcher
	watching  bool
	events    chan AssetEvent
}

func NewAssetManager(baseDir string) (*AssetManager, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("assets directory %s: %w", baseDir, core.ErrInvalidConfig)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("assets path %s is not a directory: %w", baseDir, core.ErrInvalidConfig)
	}

	return &AssetManager{
		baseDir: abs,
		assets:  make(map[string]AssetInfo),
		loaders: make(map[metadata.ResourceType]Loader),
		events:  make(chan AssetEvent, 16),
		done:    make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(watch bool) error {
	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeScene, &loaders.SceneLoader{BaseDir: am.baseDir})

	if watch {
		fsWatch, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		am.fsnotify = fsWatch
		am.watching = true
		go am.start()
	}

	return am.watchRecursive(am.baseDir)
}

// Resolve turns a path relative to the assets directory into an absolute one.
func (am *AssetManager) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(am.baseDir, name)
}

// Changes delivers asset events while watching. It is closed by Shutdown.
func (am *AssetManager) Changes() <-chan AssetEvent {
	return am.events
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Loader returns the loader registered for a resource type.
func (am *AssetManager) Loader(resourceType metadata.ResourceType) (Loader, bool) {
	l, ok := am.loaders[resourceType]
	return l, ok
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	if am.closed() {
		return nil, errClosed
	}
	path := am.Resolve(name)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[path] = asset
	}
	am.mutex.Unlock()
	if !exists {
		return nil, fmt.Errorf("asset not found: %s: %w", path, core.ErrLoadFailure)
	}
	if asset.Type != resourceType {
		return nil, fmt.Errorf("asset %s is a %s, not a %s: %w", path, asset.Type, resourceType, core.ErrUnsupportedFormat)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}
	return loader.Load(path, resourceType, params)
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	loader, ok := am.loaders[asset.Type]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}
	return loader.Unload(asset)
}

// Assets returns a snapshot of the index.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	return out
}

func (am *AssetManager) Shutdown() error {
	am.closeOnce.Do(func() {
		close(am.done)
		if !am.watching {
			close(am.events)
		}
	})
	return nil
}

func (am *AssetManager) closed() bool {
	select {
	case <-am.done:
		return true
	default:
		return false
	}
}

func (am *AssetManager) start() {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("could not watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if info, ok := am.handleFileEvent(e.Name); ok {
					am.notify(AssetEvent{Path: info.Path, Type: info.Type})
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if info, ok := am.removeAsset(e.Name); ok {
					am.notify(AssetEvent{Path: info.Path, Type: info.Type, Removed: true})
				}
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			return
		}
	}
}

// notify never blocks; a slow reader only needs to know something changed.
func (am *AssetManager) notify(e AssetEvent) {
	select {
	case am.events <- e:
	default:
		core.LogDebug("dropping asset event for %s", e.Path)
	}
}

// watchRecursive indexes every file under path and, when watching, adds each directory to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if strings.HasPrefix(fi.Name(), ".") && walkPath != path {
				return filepath.SkipDir
			}
			if am.watching {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (AssetInfo, bool) {
	assetType, ok := determineAssetType(path)
	if !ok {
		return AssetInfo{}, false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return AssetInfo{}, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := AssetInfo{Path: abs, Type: assetType}
	if prev, exists := am.assets[abs]; exists {
		info.LastLoaded = prev.LastLoaded
	}
	am.assets[abs] = info
	return info, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) (AssetInfo, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return AssetInfo{}, false
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	info, ok := am.assets[abs]
	delete(am.assets, abs)
	return info, ok
}

func determineAssetType(path string) (metadata.ResourceType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glsl", ".vert", ".frag":
		return metadata.ResourceTypeShader, true
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return metadata.ResourceTypeImage, true
	case ".toml", ".yaml", ".yml":
		return metadata.ResourceTypeScene, true
	default:
		return 0, false
	}
}

var errClosed = errors.New("asset manager already shut down")

package manifest

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Files returns the deployment manifests for repo/env inside a GitOps
// checkout, relative to gitopsDir. The layout mirrors the manifest
// repository convention: <repo>/<env>/base/**/*.yaml.
func Files(gitopsDir, repo, env string) ([]string, error) {
	pattern := path.Join(repo, strings.ToLower(env), "base", "**", "*.yaml")
	matches, err := doublestar.Glob(os.DirFS(gitopsDir), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return matches, nil
}

// UpdateImages rewrites the container image of every deployment manifest
// for repo/env to image. Manifests without a container image field are
// left untouched with a warning; a checkout without any matching manifest
// is not an error, the subsequent commit simply becomes a no-op.
func UpdateImages(gitopsDir, repo, env, image string) error {
	files, err := Files(gitopsDir, repo, env)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Warn("no deployment manifests found", "dir", gitopsDir, "repo", repo, "env", env)
		return nil
	}

	for _, f := range files {
		p := filepath.Join(gitopsDir, f)
		if err := SetImage(p, image); err != nil {
			return fmt.Errorf("updating %s: %w", f, err)
		}
		slog.Info("updated manifest image", "file", f, "image", image)
	}
	return nil
}

// SetImage rewrites .spec.template.spec.containers[0].image in a single
// manifest file, preserving the rest of the document.
func SetImage(filename, image string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}
	if len(doc.Content) == 0 {
		slog.Warn("manifest is empty, skipping", "file", filename)
		return nil
	}

	img := imageNode(doc.Content[0])
	if img == nil {
		slog.Warn("manifest has no container image, skipping", "file", filename)
		return nil
	}
	img.SetString(image)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filename, out, 0o600); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// imageNode walks spec.template.spec.containers[0].image.
func imageNode(root *yaml.Node) *yaml.Node {
	spec := mappingValue(root, "spec")
	podSpec := mappingValue(mappingValue(spec, "template"), "spec")
	containers := mappingValue(podSpec, "containers")
	if containers == nil || containers.Kind != yaml.SequenceNode || len(containers.Content) == 0 {
		return nil
	}
	return mappingValue(containers.Content[0], "image")
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

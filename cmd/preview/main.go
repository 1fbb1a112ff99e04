// Command preview renders a single textured quad with the shading
// pipeline and dumps the resolved G-buffer channels as WebP images.
// It exists to eyeball material resolution end to end without a GPU.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/shadecore"
	"github.com/gekko3d/shadecore/core"
	"github.com/gekko3d/shadecore/material"
	"github.com/gekko3d/shadecore/shading"
	"github.com/gekko3d/shadecore/texture"
)

type config struct {
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	FovY         float32    `json:"fov_y"`
	CameraPos    [3]float32 `json:"camera_pos"`
	CameraTarget [3]float32 `json:"camera_target"`
	QuadSize     float32    `json:"quad_size"`
	Manifest     string     `json:"manifest"`
	Material     string     `json:"material"`
	FixedLOD     *float32   `json:"fixed_lod,omitempty"` // disables ray differentials when set
	Outputs      []string   `json:"outputs"`
}

func defaultConfig() config {
	return config{
		Width:        512,
		Height:       512,
		FovY:         45,
		CameraPos:    [3]float32{0, -3, 2},
		CameraTarget: [3]float32{0, 0, 0},
		QuadSize:     4,
		Outputs:      []string{"diffuse", "normal", "roughness"},
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("preview: read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("preview: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// quad builds two triangles spanning size x size in the XY plane
// (Z-up), UVs covering [0,1]^2.
func quad(size float32) [2]core.Triangle {
	h := size / 2
	p := [4]mgl32.Vec3{
		{-h, -h, 0},
		{h, -h, 0},
		{h, h, 0},
		{-h, h, 0},
	}
	uv := [4]mgl32.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	up := mgl32.Vec3{0, 0, 1}

	t0 := core.Triangle{
		Positions: [3]mgl32.Vec3{p[0], p[1], p[2]},
		Normals:   [3]mgl32.Vec3{up, up, up},
		UVs:       [3]mgl32.Vec2{uv[0], uv[1], uv[2]},
	}
	t1 := core.Triangle{
		Positions: [3]mgl32.Vec3{p[0], p[2], p[3]},
		Normals:   [3]mgl32.Vec3{up, up, up},
		UVs:       [3]mgl32.Vec2{uv[0], uv[2], uv[3]},
	}
	t0.ComputeTangents()
	t1.ComputeTangents()
	return [2]core.Triangle{t0, t1}
}

func run(log shadecore.Logger, cfg config, outDir string) error {
	bank := texture.NewBank(log)
	lib := material.NewLibrary(log)

	var matID material.ID
	if cfg.Manifest != "" {
		ids, err := lib.LoadManifest(cfg.Manifest, bank)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return fmt.Errorf("preview: manifest %s has no materials", cfg.Manifest)
		}
		matID = ids[0]
		if cfg.Material != "" {
			id, ok := lib.Lookup(cfg.Material)
			if !ok {
				return fmt.Errorf("preview: material %q not in manifest", cfg.Material)
			}
			matID = id
		}
	} else {
		m := material.New("default")
		m.BaseColorFactor = mgl32.Vec4{0.8, 0.2, 0.2, 1}
		m.SpecFactor = mgl32.Vec4{1, 0.5, 0, 0}
		matID = lib.Add(m)
	}

	opts := shading.DefaultOptions()
	if cfg.FixedLOD != nil {
		opts.RayDifferentials = false
		opts.FixedLOD = *cfg.FixedLOD
	}
	pipe := shading.NewPipeline(bank, lib, opts)

	cam := core.NewCamera(
		mgl32.Vec3(cfg.CameraPos),
		mgl32.Vec3(cfg.CameraTarget),
		mgl32.Vec3{0, 0, 1},
		cfg.FovY, cfg.Width, cfg.Height,
	)
	tris := quad(cfg.QuadSize)
	gb := newGBuffer(cfg.Width, cfg.Height)

	discarded := 0
	for py := 0; py < cfg.Height; py++ {
		for px := 0; px < cfg.Width; px++ {
			ray := cam.PrimaryRay(px, py)

			var best core.Hit
			var bestTri core.Triangle
			found := false
			for _, tri := range tris {
				if hit, ok := tri.Intersect(ray); ok && (!found || hit.T < best.T) {
					best, bestTri, found = hit, tri, true
				}
			}
			if !found {
				continue
			}

			err := pipe.ShadeInto(cam, ray, bestTri, best, matID, px, py, gb)
			if errors.Is(err, shading.ErrAlphaDiscard) {
				discarded++
				continue
			}
			if err != nil {
				return err
			}
		}
	}
	if discarded > 0 {
		log.Debugf("alpha test discarded %d hits", discarded)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("preview: create output dir %s: %w", outDir, err)
	}
	for _, name := range cfg.Outputs {
		if err := gb.writeChannel(outDir, name); err != nil {
			return err
		}
		log.Infof("wrote %s/%s.webp", outDir, name)
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "JSON config file (defaults used when empty)")
	outDir := flag.String("out", "out", "output directory for G-buffer channels")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log := shadecore.NewDefaultLogger("preview", *debug)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	if err := run(log, cfg, *outDir); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

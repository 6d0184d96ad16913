package world

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/assets"
	"github.com/Faultbox/trailhead/internal/config"
	"github.com/Faultbox/trailhead/internal/engine/camera"
	"github.com/Faultbox/trailhead/internal/engine/debug"
	"github.com/Faultbox/trailhead/internal/engine/mesh"
	"github.com/Faultbox/trailhead/internal/engine/physics"
	"github.com/Faultbox/trailhead/internal/engine/scene"
	"github.com/Faultbox/trailhead/internal/game/animation"
	"github.com/Faultbox/trailhead/internal/game/character"
	"github.com/Faultbox/trailhead/internal/game/controls"
	"github.com/Faultbox/trailhead/internal/game/hud"
	"github.com/Faultbox/trailhead/internal/logger"
)

// Node colors.
var (
	groundColor    = mgl32.Vec3{0.33, 0.55, 0.27}
	treeColor      = mgl32.Vec3{0.2, 0.45, 0.2}
	characterColor = mgl32.Vec3{0.85, 0.55, 0.3}
)

// Node names.
const (
	GroundNode    = "ground"
	CharacterNode = "character"
)

// treeRadiusFactor is the share of a tree's footprint that blocks movement.
const treeRadiusFactor = 0.15

// clip names accepted for each animation state, in order of preference
var clipAliases = map[string][]string{
	animation.ClipIdle:    {"idle"},
	animation.ClipRunning: {"running", "run", "walk"},
}

// Build assembles the world from configuration and loaded models. A nil
// model is replaced by its fallback. surface receives the quest list; nil
// disables quests.
func Build(cfg *config.Config, characterModel, treeModel *assets.Model, surface hud.Surface) *World {
	log := logger.Named("world")
	if characterModel == nil {
		characterModel = assets.FallbackCharacter()
	}
	if treeModel == nil {
		treeModel = assets.FallbackTree()
	}

	sc := scene.New()
	sc.ShadowsEnabled = cfg.Graphics.Shadows
	sc.Sun.Azimuth = cfg.Graphics.SunAzimuth
	sc.Sun.Elevation = cfg.Graphics.SunElevation

	phys := physics.NewWorld(cfg.World.Size, cfg.Physics.Gravity)
	w := &World{
		Physics:  phys,
		Controls: &controls.State{},
		Scene:    sc,
		Step:     cfg.Physics.Timestep,
	}

	// ground
	sc.Add(scene.NewNode(GroundNode, mesh.Plane(cfg.World.Size), groundColor)).CastShadow = false
	ground := phys.AddBody(physics.BodyDef{
		Name:  GroundNode,
		Kind:  physics.Static,
		Shape: physics.Plane(),
	})

	// character
	spawn := mgl32.Vec3(cfg.Player.Spawn)
	if characterModel.Fallback {
		spawn = assets.FallbackCharacterPosition
	}
	bounds := characterModel.Mesh.Bounds
	size := bounds.Size()
	charNode := sc.Add(scene.NewNode(CharacterNode, characterModel.Mesh, characterColor))
	charNode.SetPosition(spawn)
	w.CharBody = phys.AddBody(physics.BodyDef{
		Name:          CharacterNode,
		Kind:          physics.Dynamic,
		Mass:          cfg.Physics.CharacterMass,
		Shape:         physics.Cylinder(cfg.Physics.CharacterRadius, size.Y()),
		Position:      spawn.Add(bounds.Center()),
		LinearDamping: cfg.Physics.LinearDamping,
	})

	w.Selector = animation.NewSelector(clipSet(characterModel.Clips))
	w.Character = character.NewController(spawn, cfg.Player.MoveSpeed)
	w.Character.Body = &bodyMirror{body: w.CharBody, offset: bounds.Center()}
	w.Character.Node = charNode
	w.Character.Selector = w.Selector
	w.lastPos = spawn

	// forest
	placements := ScatterTrees(cfg.World.Seed, cfg.World.TreeCount, cfg.World.Size, cfg.World.ClearRange, spawn)
	if len(placements) < cfg.World.TreeCount {
		log.Warn("forest is crowded, placed fewer trees",
			zap.Int("requested", cfg.World.TreeCount),
			zap.Int("placed", len(placements)))
	}
	tb := treeModel.Mesh.Bounds
	ts := tb.Size()
	for i, p := range placements {
		node := sc.Add(scene.NewNode(treeName(i), treeModel.Mesh, treeColor))
		node.SetPosition(p.Position)
		node.SetRotationY(p.RotationY)
		node.Scale = mgl32.Vec3{p.Scale, p.Scale, p.Scale}

		center := mgl32.HomogRotate3DY(p.RotationY).Mul4x1(tb.Center().Mul(p.Scale).Vec4(1)).Vec3()
		body := phys.AddBody(physics.BodyDef{
			Name:     node.Name,
			Kind:     physics.Static,
			Shape:    physics.Cylinder(treeRadiusFactor*min(ts.X(), ts.Z())*p.Scale, ts.Y()*p.Scale),
			Position: p.Position.Add(center),
			Yaw:      p.RotationY,
		})
		w.trees = append(w.trees, tree{body: body})
	}

	w.Overlay = debug.NewOverlay(sc, phys, cfg.World.Size, cfg.Debug.Overlay)
	w.Overlay.Add(ground)
	w.Overlay.Add(w.CharBody)
	for _, t := range w.trees {
		w.Overlay.Add(t.body)
	}

	w.Camera = camera.NewRig(cfg.Camera.Distance, cfg.Camera.Height, cfg.Camera.Sensitivity)
	w.Camera.FovY = mgl32.DegToRad(cfg.Camera.FovDegrees)
	w.Camera.Follow(spawn)

	if surface != nil {
		w.Quests = hud.NewQuestLog(surface, hud.DefaultQuests(len(w.trees)))
	}

	log.Info("world built",
		zap.String("character", characterModel.Name),
		zap.Bool("characterFallback", characterModel.Fallback),
		zap.String("tree", treeModel.Name),
		zap.Int("trees", len(w.trees)),
		zap.Int("clips", len(characterModel.Clips)))
	return w
}

func treeName(i int) string {
	return "tree-" + strconv.Itoa(i)
}

// clipSet maps model clips onto the idle and running slots.
func clipSet(infos []assets.ClipInfo) animation.ClipSet {
	byName := make(map[string]assets.ClipInfo, len(infos))
	for _, c := range infos {
		byName[strings.ToLower(c.Name)] = c
	}
	set := animation.ClipSet{}
	for slot, names := range clipAliases {
		for _, n := range names {
			if c, ok := byName[n]; ok {
				set[slot] = &animation.Clip{Name: c.Name, Duration: c.Duration}
				break
			}
		}
	}
	return set
}

// bodyMirror writes the character position into its physics body, whose
// origin is the shape center rather than the model origin.
type bodyMirror struct {
	body   *physics.Body
	offset mgl32.Vec3
}

func (m *bodyMirror) SetPosition(p mgl32.Vec3) {
	m.body.SetPosition(p.Add(m.offset))
}

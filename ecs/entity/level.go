package entity

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/temple/attributes"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/prefabs"
)

// TileLayer is the render layer of level sprites.
const TileLayer = 0

// SpawnedLevel reports what SpawnLevel created.
type SpawnedLevel struct {
	Entities []ecs.Entity
	// PlayerX and PlayerY are the position of the player attribute, or the
	// origin when the level has no player.
	PlayerX, PlayerY float64
	HasPlayer        bool
}

// SpawnLevel creates one entity per sprite of level, tagged as level loaded,
// and builds each sprite's attributes. On error every entity created so far
// is destroyed.
func SpawnLevel(w *ecs.World, id levels.ID, level levels.Level, images func(texture string) *ebiten.Image, player *prefabs.PlayerSpec) (SpawnedLevel, error) {
	var out SpawnedLevel
	for _, sprite := range level.Sprites {
		var img *ebiten.Image
		if images != nil {
			img = images(sprite.Texture)
		}
		e, err := newLevelSprite(w, sprite, img)
		if err != nil {
			destroyAll(w, out.Entities)
			return SpawnedLevel{}, err
		}
		out.Entities = append(out.Entities, e)

		x, y := sprite.PixelPos()
		ctx := &BuildContext{Level: id, X: x, Y: y, Player: player}
		for _, attr := range sprite.Attributes {
			if attributes.Key(attr) == attributes.KeyPlayer {
				out.PlayerX, out.PlayerY, out.HasPlayer = x, y, true
			}
			if err := BuildAttribute(w, e, attr, ctx); err != nil {
				destroyAll(w, out.Entities)
				return SpawnedLevel{}, fmt.Errorf("sprite %q at %v: %w", sprite.Name, sprite.Pos, err)
			}
		}
	}
	return out, nil
}

func newLevelSprite(w *ecs.World, sprite levels.Sprite, img *ebiten.Image) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addLevelSprite(w, e, sprite, img); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func addLevelSprite(w *ecs.World, e ecs.Entity, sprite levels.Sprite, img *ebiten.Image) error {
	x, y := sprite.PixelPos()
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("level sprite: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Texture: sprite.Texture, Image: img}); err != nil {
		return fmt.Errorf("level sprite: add sprite: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: TileLayer}); err != nil {
		return fmt.Errorf("level sprite: add render layer: %w", err)
	}
	if err := ecs.Add(w, e, component.LevelLoadedSpriteComponent.Kind(), &component.LevelLoadedSprite{}); err != nil {
		return fmt.Errorf("level sprite: add level tag: %w", err)
	}
	return nil
}

func destroyAll(w *ecs.World, ents []ecs.Entity) {
	for _, e := range ents {
		ecs.DestroyEntity(w, e)
	}
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/character"
	"github.com/KirkDiggler/chronicle-bot-discord/internal/domain/rulebook"
	chroniclesRepo "github.com/KirkDiggler/chronicle-bot-discord/internal/repositories/chronicles"
)

// Audits stored characters for data problems: negative balances, traits
// above their caps, orphaned chronicle references. With -fix it clamps what
// it can.
func main() {
	fix := flag.Bool("fix", false, "clamp bad balances and ratings instead of just reporting")
	flag.Parse()

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	chronRepo := chroniclesRepo.NewRedisRepository(&chroniclesRepo.RedisRepoConfig{
		Client: client,
	})

	var cursor uint64
	audited, problems, fixed := 0, 0, 0
	for {
		keys, next, err := client.Scan(ctx, cursor, "character:*", 100).Result()
		if err != nil {
			log.Fatalf("Failed to scan character keys: %v", err)
		}

		for _, key := range keys {
			keyType, err := client.Type(ctx, key).Result()
			if err != nil || keyType != "string" {
				continue
			}

			raw, err := client.Get(ctx, key).Result()
			if err != nil {
				log.Printf("Failed to read %s: %v", key, err)
				continue
			}

			var char character.Character
			if err := json.Unmarshal([]byte(raw), &char); err != nil {
				problems++
				log.Printf("PROBLEM %s: undecodable: %v", key, err)
				continue
			}
			audited++

			issues := auditCharacter(&char)
			if char.ChronicleID != "" {
				if _, chronErr := chronRepo.Get(ctx, char.ChronicleID); chronErr != nil {
					issues = append(issues, fmt.Sprintf("references missing chronicle %s", char.ChronicleID))
				}
			}
			if len(issues) == 0 {
				continue
			}

			problems++
			for _, issue := range issues {
				log.Printf("PROBLEM %s (%s): %s", char.Name, char.ID, issue)
			}

			if *fix {
				clampCharacter(&char)
				data, marshalErr := json.Marshal(&char)
				if marshalErr != nil {
					log.Printf("Failed to re-encode %s: %v", char.ID, marshalErr)
					continue
				}
				if setErr := client.Set(ctx, key, data, 0).Err(); setErr != nil {
					log.Printf("Failed to write %s: %v", char.ID, setErr)
					continue
				}
				fixed++
				log.Printf("FIXED %s (%s)", char.Name, char.ID)
			}
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	log.Printf("Audited %d characters: %d with problems, %d fixed", audited, problems, fixed)
}

func auditCharacter(char *character.Character) []string {
	var issues []string
	if char.XP < 0 {
		issues = append(issues, fmt.Sprintf("negative XP balance %d", char.XP))
	}
	if char.Freebies < 0 {
		issues = append(issues, fmt.Sprintf("negative freebie balance %d", char.Freebies))
	}
	for name, rating := range char.Traits {
		if rating < 0 {
			issues = append(issues, fmt.Sprintf("%s rated %d", name, rating))
		}
	}
	arete := char.TraitRating(rulebook.TraitArete)
	for _, sphere := range rulebook.SphereNames {
		if rating := char.TraitRating(sphere); rating > arete {
			issues = append(issues, fmt.Sprintf("%s rated %d above Arete %d", sphere, rating, arete))
		}
	}
	return issues
}

func clampCharacter(char *character.Character) {
	if char.XP < 0 {
		char.XP = 0
	}
	if char.Freebies < 0 {
		char.Freebies = 0
	}
	for name, rating := range char.Traits {
		if rating < 0 {
			char.Traits[name] = 0
		}
	}
	arete := char.TraitRating(rulebook.TraitArete)
	for _, sphere := range rulebook.SphereNames {
		if char.TraitRating(sphere) > arete {
			char.Traits[sphere] = arete
		}
	}
}

package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the calling collaborator's actor ID in
// the Gin context. Using a custom type prevents collisions.
const actorIDKey = contextKey("actorID")

// actorHeader carries the collaborator-supplied actor identity used for
// audit fields. Authentication itself is owned by the hosting application.
const actorHeader = "X-Actor-ID"

// defaultActor is used when the caller does not identify itself.
const defaultActor = "system"

// ActorMiddleware extracts the actor identity from the request header and
// stores it in the Gin context for audit fields.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorIDKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the actor ID from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return defaultActor
	}
	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return defaultActor
	}
	return actor
}

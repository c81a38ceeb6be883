// Package session stores Rush Hour play sessions for the server.
//
// A service.Session owns an engine.Board built from a board definition,
// together with its creation and last access times. Manager keeps sessions
// in memory under 4 hex digit IDs drawn from crypto/rand; lookups ignore
// case.
//
// With a SessionPersistence backend the manager writes each session through
// on create and on access, and loads sessions it does not hold in memory on
// the first Get. FilePersistence stores one JSON file per session holding
// the definition and the moves played. Restoring rebuilds the starting
// board and replays the moves, so a file that records a move the board does
// not allow fails to load. Files without a definition are rebuilt from the
// board manager by board name.
//
//	persistence, err := session.NewFilePersistence("sessions", boardManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	sess, err := manager.Create("", boardManager.GetDefault())
//
// CleanupExpiredSessions only forgets idle sessions in memory. Their files
// stay on disk and come back on the next Get.
package session

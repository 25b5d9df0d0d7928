package game

// Gameplay constants. Distances are in tiles, angles in degrees, times in
// seconds, rates per second.
const (
	// TickRate is the fixed simulation rate the binaries step at.
	TickRate = 60
	// TickSeconds is the dt of one fixed tick.
	TickSeconds = 1.0 / TickRate

	MaxPlayers = 4

	RaycastSamples = 100
	RaycastMaxStep = 0.1

	SafeZoneSize = 5

	MinMapSize      = 7
	MinArenaMapSize = 12
)

const (
	playerTankPhysicsRadius  = 0.32
	playerTankCosmeticRadius = 0.64
	playerTankMaxSpeed       = 1.3
	playerTankTurnSpeed      = 160.0
	playerTankTopTurnSpeed   = 225.0
	playerTankFireInterval   = 0.3
	playerTankMaxHealth      = 5
	playerTankExtraLives     = 3
	playerTankBarrelOffset   = 0.4
	playerTankDeathBurst     = 0.25 // explosion ring offset on death

	enemyTurretPhysicsRadius  = 0.32
	enemyTurretCosmeticRadius = 0.64
	enemyTurretTopTurnSpeed   = 15.0
	enemyTurretSightRange     = 10.0
	enemyTurretFireInterval   = 1.3
	enemyTurretScanTime       = 10.0
	enemyTurretScanAngle      = 25.0
	enemyTurretMaxHealth      = 2
	enemyTurretBarrelOffset   = 0.5

	enemyTankPhysicsRadius  = 0.32
	enemyTankCosmeticRadius = 0.64
	enemyTankMaxSpeed       = 1.0
	enemyTankTurnSpeed      = 100.0
	enemyTankTopTurnSpeed   = 100.0
	enemyTankSightRange     = 10.0
	enemyTankFireInterval   = 1.7
	enemyTankWhiskerRange   = 1.0
	enemyTankWhiskerAngle   = 25.0
	enemyTankMaxHealth      = 2
	enemyTankBarrelOffset   = 0.4
	enemyTankArriveDistSq   = 0.01
	enemyTankUTurnDegrees   = 179.0

	// Aim tolerances shared by both AI kinds.
	aiDriveTolerance = 45.0
	aiFireTolerance  = 5.0

	bulletPhysicsRadius  = 0.1
	bulletCosmeticRadius = 0.25
	bulletSpeed          = 5.0
	bulletMaxBounces     = 3
	bulletDamage         = 1

	boulderPhysicsRadius  = 0.45
	boulderCosmeticRadius = 0.55

	explosionDuration       = 1.0
	explosionScaleSmall     = 0.25
	explosionScaleLarge     = 1.0
	explosionMuzzleSeconds  = 0.25
	explosionRadiusPerScale = 0.75

	// spawnAttemptsPerTile bounds rejection sampling when placing entities.
	spawnAttemptsPerTile = 4
)

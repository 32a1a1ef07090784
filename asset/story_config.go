package asset

// DefaultStoryConfig is the built-in story beat definition
// Beats advance strictly forward; guards and actions resolve against the
// registries the driver populates before loading
const DefaultStoryConfig = `

initial = "approach"

[[states]]
name = "approach"
on_update = [
    { action = "AnimateApproach" },
]
transitions = [
    { target = "bite", guard = "ApproachComplete" },
]

[[states]]
name = "bite"
on_enter = [
    { action = "ShowBite" },
]
on_update = [
    { action = "EmitVenom" },
]
transitions = [
    { target = "venom_spread", guard = "BiteComplete" },
]

[[states]]
name = "venom_spread"
on_enter = [
    { action = "ScheduleDetection" },
]
on_update = [
    { action = "RaiseVitals" },
]
transitions = [
    { target = "classify", guard = "DetectionElapsed" },
]

[[states]]
name = "classify"
on_enter = [
    { action = "ShowClassifying" },
]
transitions = [
    { target = "inject", guard = "ClassifyComplete" },
]

[[states]]
name = "inject"
on_enter = [
    { action = "RevealInjector" },
]
on_update = [
    { action = "AnimateInjection" },
]
transitions = [
    { target = "recover", guard = "InjectComplete" },
]

[[states]]
name = "recover"
on_enter = [
    { action = "BeginRecovery" },
]
on_update = [
    { action = "AnimateRecovery" },
]
on_exit = [
    { action = "ShowStable" },
]
transitions = [
    { target = "end", guard = "RecoverComplete" },
]
`

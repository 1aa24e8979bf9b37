package game

type Director interface {
	/**
	 * Initialize the director for a freshly generated game
	 */
	Init(*Game)

	/**
	 * Perform a single step of actions
	 */
	Act()

	/**
	 * Stop acting
	 */
	End()
}

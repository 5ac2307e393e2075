package renderer

// litVertexShader transforms lit mesh vertices into clip space.
const litVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat4 uLightViewProj;

out vec3 vNormal;
out vec4 vLightSpace;

void main() {
	vec4 world = uModel * vec4(aPosition, 1.0);
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
	vLightSpace = uLightViewProj * world;
	gl_Position = uProjection * uView * world;
}
`

// litFragmentShader shades with one directional light plus ambient.
// uLightDir is the direction the light travels.
const litFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec4 vLightSpace;

uniform vec3 uLightDir;
uniform vec3 uLightColor;
uniform float uAmbient;
uniform vec3 uColor;
uniform sampler2DShadow uShadowMap;
uniform bool uShadowsEnabled;

out vec4 FragColor;

float visibility(float cosTheta) {
	if (!uShadowsEnabled) {
		return 1.0;
	}
	vec3 p = vLightSpace.xyz / vLightSpace.w * 0.5 + 0.5;
	if (p.z > 1.0) {
		return 1.0;
	}
	float bias = clamp(0.005 * tan(acos(cosTheta)), 0.0005, 0.01);
	vec2 texel = 1.0 / vec2(textureSize(uShadowMap, 0));
	float lit = 0.0;
	for (int x = -1; x <= 1; x++) {
		for (int y = -1; y <= 1; y++) {
			lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * texel, p.z - bias));
		}
	}
	return lit / 9.0;
}

void main() {
	vec3 n = normalize(vNormal);
	float cosTheta = dot(n, -normalize(uLightDir));
	float diffuse = max(cosTheta, 0.0);
	if (diffuse > 0.0) {
		diffuse *= visibility(cosTheta);
	}
	vec3 light = uAmbient + diffuse * uLightColor;
	FragColor = vec4(uColor * light, 1.0);
}
`

// depthVertexShader draws shadow casters from the light.
const depthVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uModel;
uniform mat4 uLightViewProj;

void main() {
	gl_Position = uLightViewProj * uModel * vec4(aPosition, 1.0);
}
`

const depthFragmentShader = `
#version 410 core

void main() {
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aColor;

uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vColor;

void main() {
	vColor = aColor;
	gl_Position = uProjection * uView * vec4(aPosition, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

in vec3 vColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vColor, 1.0);
}
`
